// Package dynamodb implements the todo repository against one DynamoDB
// table with an owner GSI.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
)

// maxBatchWriteItems is DynamoDB's per-request BatchWriteItem limit.
const maxBatchWriteItems = 25

// API is the subset of the DynamoDB client used by the repository.
type API interface {
	GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *awsdynamodb.UpdateItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *awsdynamodb.ScanInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ScanOutput, error)
	Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *awsdynamodb.BatchWriteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchWriteItemOutput, error)
}

// TodoRepository implements repository.TodoRepository over one table.
type TodoRepository struct {
	client    API
	tableName string
	indexName string
	logger    *zap.Logger
	now       func() time.Time
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

// NewTodoRepository creates a repository bound to tableName, with
// indexName naming the GSI keyed by userId.
func NewTodoRepository(client API, tableName, indexName string, logger *zap.Logger) *TodoRepository {
	return &TodoRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
		now:       time.Now,
	}
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       todoKey(id),
	})
	if err != nil {
		r.logFailure("GetItem", err)
		return nil, fmt.Errorf("failed to get todo %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var t todo.Todo
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal todo %s: %w", id, err)
	}
	return &t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("failed to marshal todo: %w", err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name("id"))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	_, err = r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("todo %s: %w", t.ID, repository.ErrConflict)
		}
		r.logFailure("PutItem", err)
		return fmt.Errorf("failed to create todo %s: %w", t.ID, err)
	}

	r.logger.Info("created todo",
		zap.String("id", t.ID),
		zap.String("userId", t.UserID),
	)
	return nil
}

func (r *TodoRepository) Update(ctx context.Context, id, ownerID string, changes []repository.Field) (*todo.Todo, error) {
	update := expression.Set(
		expression.Name("updatedDate"),
		expression.Value(r.now().UTC().Format(time.RFC3339)),
	)
	for _, f := range changes {
		update = update.Set(expression.Name(f.Name), expression.Value(f.Value))
	}

	// Existence and ownership are checked in the same conditional write,
	// so there is no window between check and update.
	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("userId").Equal(expression.Value(ownerID)))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(cond).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       todoKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("todo %s: %w", id, repository.ErrNotFoundOrForbidden)
		}
		r.logFailure("UpdateItem", err)
		return nil, fmt.Errorf("failed to update todo %s: %w", id, err)
	}

	var t todo.Todo
	if err := attributevalue.UnmarshalMap(out.Attributes, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated todo %s: %w", id, err)
	}

	r.logger.Info("updated todo",
		zap.String("id", id),
		zap.String("userId", ownerID),
		zap.Int("fields", len(changes)),
	)
	return &t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Name("userId").Equal(expression.Value(ownerID)))

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition: %w", err)
	}

	_, err = r.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       todoKey(id),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("todo %s: %w", id, repository.ErrNotFoundOrForbidden)
		}
		r.logFailure("DeleteItem", err)
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}

	r.logger.Info("deleted todo",
		zap.String("id", id),
		zap.String("userId", ownerID),
	)
	return nil
}

func (r *TodoRepository) Scan(ctx context.Context, ownerID string, filter *repository.ListFilter, limit int32, nextToken string) (*repository.Page, error) {
	filt := expression.Name("userId").Equal(expression.Value(ownerID))
	if filter != nil {
		if filter.Priority != nil {
			filt = filt.And(expression.Name("priority").Equal(expression.Value(*filter.Priority)))
		}
		if filter.Completed != nil {
			filt = filt.And(expression.Name("completed").Equal(expression.Value(*filter.Completed)))
		}
		if filter.DueAfter != nil {
			filt = filt.And(expression.Name("dueDate").GreaterThanEqual(expression.Value(*filter.DueAfter)))
		}
		if filter.DueBefore != nil {
			filt = filt.And(expression.Name("dueDate").LessThanEqual(expression.Value(*filter.DueBefore)))
		}
	}

	expr, err := expression.NewBuilder().WithFilter(filt).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter expression: %w", err)
	}

	startKey, err := repository.DecodeNextToken(nextToken)
	if err != nil {
		return nil, err
	}

	input := &awsdynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	out, err := r.client.Scan(ctx, input)
	if err != nil {
		r.logFailure("Scan", err)
		return nil, fmt.Errorf("failed to scan todos: %w", err)
	}

	items := make([]todo.Todo, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan results: %w", err)
	}
	if items == nil {
		items = []todo.Todo{}
	}

	return &repository.Page{
		Items:     items,
		NextToken: repository.EncodeNextToken(out.LastEvaluatedKey),
	}, nil
}

func (r *TodoRepository) QueryByOwner(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	keyCond := expression.Key("userId").Equal(expression.Value(ownerID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	todos := make([]todo.Todo, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.indexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			r.logFailure("Query", err)
			return nil, fmt.Errorf("failed to query todos for user %s: %w", ownerID, err)
		}

		page := make([]todo.Todo, 0, len(out.Items))
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal query results: %w", err)
		}
		todos = append(todos, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return todos, nil
}

// BatchDelete issues one BatchWriteItem per chunk of 25 ids, in order. It
// is not atomic: a failure aborts the loop, leaving earlier chunks
// deleted, and the error records how many ids had been submitted.
func (r *TodoRepository) BatchDelete(ctx context.Context, ids []string) (int, error) {
	submitted := 0
	for start := 0; start < len(ids); start += maxBatchWriteItems {
		end := min(start+maxBatchWriteItems, len(ids))
		chunk := ids[start:end]

		writes := make([]types.WriteRequest, 0, len(chunk))
		for _, id := range chunk {
			writes = append(writes, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: todoKey(id)},
			})
		}

		out, err := r.client.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: writes},
		})
		if err != nil {
			r.logFailure("BatchWriteItem", err)
			return submitted, fmt.Errorf("batch delete aborted after submitting %d of %d ids: %w", submitted, len(ids), err)
		}

		// Throttled writes come back unprocessed; give them one more try.
		if unprocessed := out.UnprocessedItems[r.tableName]; len(unprocessed) > 0 {
			retry, err := r.client.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{r.tableName: unprocessed},
			})
			if err != nil {
				r.logFailure("BatchWriteItem", err)
				return submitted, fmt.Errorf("batch delete aborted after submitting %d of %d ids: %w", submitted, len(ids), err)
			}
			if left := retry.UnprocessedItems[r.tableName]; len(left) > 0 {
				return submitted, fmt.Errorf("batch delete left %d ids unprocessed after retry", len(left))
			}
		}

		submitted += len(chunk)
	}

	r.logger.Info("batch deleted todos", zap.Int("count", submitted))
	return submitted, nil
}

func todoKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// logFailure records a failed store call, surfacing the service error
// code when the SDK provides one.
func (r *TodoRepository) logFailure(operation string, err error) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		r.logger.Error("dynamodb call failed",
			zap.String("operation", operation),
			zap.String("errorCode", apiErr.ErrorCode()),
			zap.Error(err),
		)
		return
	}
	r.logger.Error("dynamodb call failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
}
