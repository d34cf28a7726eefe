package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
)

const (
	testTable = "TodoTable"
	testIndex = "UserIdIndex"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) UpdateItem(ctx context.Context, params *awsdynamodb.UpdateItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.UpdateItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.DeleteItemOutput)
	return out, args.Error(1)
}

func (m *mockAPI) Scan(ctx context.Context, params *awsdynamodb.ScanInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.ScanOutput)
	return out, args.Error(1)
}

func (m *mockAPI) Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.QueryOutput)
	return out, args.Error(1)
}

func (m *mockAPI) BatchWriteItem(ctx context.Context, params *awsdynamodb.BatchWriteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchWriteItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*awsdynamodb.BatchWriteItemOutput)
	return out, args.Error(1)
}

func newTestRepo(client API) *TodoRepository {
	r := NewTodoRepository(client, testTable, testIndex, zap.NewNop())
	r.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func sampleTodo() *todo.Todo {
	return &todo.Todo{
		ID:          "9e98cb23-3401-4c61-9e62-0e9b5a152aa1",
		Title:       "Buy milk",
		Priority:    todo.PriorityHigh,
		Tags:        []string{"home"},
		UserID:      "user-1",
		CreatedDate: "2026-08-30T10:00:00Z",
		UpdatedDate: "2026-08-30T10:00:00Z",
	}
}

func TestGetByID(t *testing.T) {
	t.Run("absent item yields nil, nil", func(t *testing.T) {
		client := new(mockAPI)
		client.On("GetItem", mock.Anything, mock.Anything).
			Return(&awsdynamodb.GetItemOutput{}, nil)

		got, err := newTestRepo(client).GetByID(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("present item unmarshals", func(t *testing.T) {
		want := sampleTodo()
		item, err := attributevalue.MarshalMap(want)
		require.NoError(t, err)

		client := new(mockAPI)
		client.On("GetItem", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.GetItemInput) bool {
			id, ok := in.Key["id"].(*types.AttributeValueMemberS)
			return ok && id.Value == want.ID && *in.TableName == testTable
		})).Return(&awsdynamodb.GetItemOutput{Item: item}, nil)

		got, err := newTestRepo(client).GetByID(context.Background(), want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestCreate(t *testing.T) {
	t.Run("guards against existing id", func(t *testing.T) {
		client := new(mockAPI)
		client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.PutItemInput) bool {
			return in.ConditionExpression != nil
		})).Return(&awsdynamodb.PutItemOutput{}, nil)

		err := newTestRepo(client).Create(context.Background(), sampleTodo())
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("conflict on duplicate id", func(t *testing.T) {
		client := new(mockAPI)
		client.On("PutItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		err := newTestRepo(client).Create(context.Background(), sampleTodo())
		assert.True(t, repository.IsConflict(err))
	})
}

func TestUpdate(t *testing.T) {
	changes := []repository.Field{{Name: "title", Value: "New title"}}

	t.Run("sets only present fields plus updatedDate", func(t *testing.T) {
		updated := sampleTodo()
		updated.Title = "New title"
		attrs, err := attributevalue.MarshalMap(updated)
		require.NoError(t, err)

		client := new(mockAPI)
		client.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.UpdateItemInput) bool {
			if in.ConditionExpression == nil || in.UpdateExpression == nil {
				return false
			}
			if in.ReturnValues != types.ReturnValueAllNew {
				return false
			}
			// One value per change, one for updatedDate, one for the
			// ownership condition.
			return len(in.ExpressionAttributeValues) == len(changes)+2
		})).Return(&awsdynamodb.UpdateItemOutput{Attributes: attrs}, nil)

		got, err := newTestRepo(client).Update(context.Background(), updated.ID, "user-1", changes)
		require.NoError(t, err)
		assert.Equal(t, "New title", got.Title)
		client.AssertExpectations(t)
	})

	t.Run("missing or unowned target", func(t *testing.T) {
		client := new(mockAPI)
		client.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		_, err := newTestRepo(client).Update(context.Background(), "some-id", "user-2", changes)
		assert.True(t, repository.IsNotFoundOrForbidden(err))
	})
}

func TestDelete(t *testing.T) {
	t.Run("conditional on ownership", func(t *testing.T) {
		client := new(mockAPI)
		client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.DeleteItemInput) bool {
			return in.ConditionExpression != nil
		})).Return(&awsdynamodb.DeleteItemOutput{}, nil)

		err := newTestRepo(client).Delete(context.Background(), "some-id", "user-1")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("missing or unowned target", func(t *testing.T) {
		client := new(mockAPI)
		client.On("DeleteItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		err := newTestRepo(client).Delete(context.Background(), "some-id", "user-2")
		assert.True(t, repository.IsNotFoundOrForbidden(err))
	})
}

func TestScan(t *testing.T) {
	t.Run("owner predicate always applied", func(t *testing.T) {
		client := new(mockAPI)
		client.On("Scan", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.ScanInput) bool {
			return in.FilterExpression != nil && *in.Limit == 20
		})).Return(&awsdynamodb.ScanOutput{}, nil)

		page, err := newTestRepo(client).Scan(context.Background(), "user-1", nil, 20, "")
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Empty(t, page.NextToken)
		client.AssertExpectations(t)
	})

	t.Run("filter predicates add values", func(t *testing.T) {
		completed := true
		priority := todo.PriorityHigh
		filter := &repository.ListFilter{Priority: &priority, Completed: &completed}

		client := new(mockAPI)
		client.On("Scan", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.ScanInput) bool {
			// owner + priority + completed
			return len(in.ExpressionAttributeValues) == 3
		})).Return(&awsdynamodb.ScanOutput{}, nil)

		_, err := newTestRepo(client).Scan(context.Background(), "user-1", filter, 20, "")
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("continuation key round trips", func(t *testing.T) {
		item, err := attributevalue.MarshalMap(sampleTodo())
		require.NoError(t, err)

		client := new(mockAPI)
		client.On("Scan", mock.Anything, mock.Anything).Return(&awsdynamodb.ScanOutput{
			Items:            []map[string]types.AttributeValue{item},
			LastEvaluatedKey: todoKey("9e98cb23-3401-4c61-9e62-0e9b5a152aa1"),
		}, nil)

		page, err := newTestRepo(client).Scan(context.Background(), "user-1", nil, 1, "")
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.NotEmpty(t, page.NextToken)

		key, err := repository.DecodeNextToken(page.NextToken)
		require.NoError(t, err)
		assert.Equal(t, todoKey("9e98cb23-3401-4c61-9e62-0e9b5a152aa1"), key)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		client := new(mockAPI)
		_, err := newTestRepo(client).Scan(context.Background(), "user-1", nil, 20, "!!not-a-token!!")
		assert.Error(t, err)
	})
}

func TestQueryByOwner(t *testing.T) {
	t.Run("uses the owner index", func(t *testing.T) {
		client := new(mockAPI)
		client.On("Query", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.QueryInput) bool {
			return *in.IndexName == testIndex
		})).Return(&awsdynamodb.QueryOutput{}, nil)

		todos, err := newTestRepo(client).QueryByOwner(context.Background(), "user-1")
		require.NoError(t, err)
		require.NotNil(t, todos)
		assert.Empty(t, todos)
		client.AssertExpectations(t)
	})

	t.Run("follows pagination", func(t *testing.T) {
		item, err := attributevalue.MarshalMap(sampleTodo())
		require.NoError(t, err)

		client := new(mockAPI)
		client.On("Query", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&awsdynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{item},
			LastEvaluatedKey: todoKey("9e98cb23-3401-4c61-9e62-0e9b5a152aa1"),
		}, nil).Once()
		client.On("Query", mock.Anything, mock.MatchedBy(func(in *awsdynamodb.QueryInput) bool {
			return in.ExclusiveStartKey != nil
		})).Return(&awsdynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{item},
		}, nil).Once()

		todos, err := newTestRepo(client).QueryByOwner(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Len(t, todos, 2)
		client.AssertExpectations(t)
	})
}

func TestBatchDelete(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("id-%03d", i)
		}
		return out
	}

	chunkOf := func(n int) any {
		return mock.MatchedBy(func(in *awsdynamodb.BatchWriteItemInput) bool {
			return len(in.RequestItems[testTable]) == n
		})
	}

	t.Run("30 ids issue two calls of 25 and 5", func(t *testing.T) {
		client := new(mockAPI)
		client.On("BatchWriteItem", mock.Anything, chunkOf(25)).
			Return(&awsdynamodb.BatchWriteItemOutput{}, nil).Once()
		client.On("BatchWriteItem", mock.Anything, chunkOf(5)).
			Return(&awsdynamodb.BatchWriteItemOutput{}, nil).Once()

		deleted, err := newTestRepo(client).BatchDelete(context.Background(), ids(30))
		require.NoError(t, err)
		assert.Equal(t, 30, deleted)
		client.AssertExpectations(t)
	})

	t.Run("failure on second chunk leaves the first applied", func(t *testing.T) {
		client := new(mockAPI)
		client.On("BatchWriteItem", mock.Anything, chunkOf(25)).
			Return(&awsdynamodb.BatchWriteItemOutput{}, nil).Once()
		client.On("BatchWriteItem", mock.Anything, chunkOf(5)).
			Return(nil, errors.New("throttled")).Once()

		deleted, err := newTestRepo(client).BatchDelete(context.Background(), ids(30))
		require.Error(t, err)
		assert.Equal(t, 25, deleted)
		assert.Contains(t, err.Error(), "25 of 30")
		client.AssertExpectations(t)
	})

	t.Run("unprocessed keys are retried once", func(t *testing.T) {
		leftovers := []types.WriteRequest{{
			DeleteRequest: &types.DeleteRequest{Key: todoKey("id-001")},
		}}

		client := new(mockAPI)
		client.On("BatchWriteItem", mock.Anything, chunkOf(2)).
			Return(&awsdynamodb.BatchWriteItemOutput{
				UnprocessedItems: map[string][]types.WriteRequest{testTable: leftovers},
			}, nil).Once()
		client.On("BatchWriteItem", mock.Anything, chunkOf(1)).
			Return(&awsdynamodb.BatchWriteItemOutput{}, nil).Once()

		deleted, err := newTestRepo(client).BatchDelete(context.Background(), ids(2))
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)
		client.AssertExpectations(t)
	})
}
