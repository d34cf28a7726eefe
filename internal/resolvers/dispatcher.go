package resolvers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"todo-backend/internal/appsync"
	"todo-backend/internal/validation"
)

// operations is the closed set of fields this Lambda resolves.
var operations = []string{
	// Mutations
	"createTodo",
	"updateTodo",
	"deleteTodo",
	"batchDeleteTodos",

	// Queries
	"getTodo",
	"listTodos",
	"getUserTodos",
}

// Dispatcher routes an invocation to the resolver for its field name and
// normalizes failures into the error shape the transport expects.
type Dispatcher struct {
	resolvers map[string]Handler
	logger    *zap.Logger
}

// NewDispatcher builds the field-to-resolver table and verifies it covers
// every supported operation.
func NewDispatcher(r *Resolver, logger *zap.Logger) (*Dispatcher, error) {
	table := map[string]Handler{
		"createTodo":       r.CreateTodo,
		"updateTodo":       r.UpdateTodo,
		"deleteTodo":       r.DeleteTodo,
		"batchDeleteTodos": r.BatchDeleteTodos,
		"getTodo":          r.GetTodo,
		"listTodos":        r.ListTodos,
		"getUserTodos":     r.GetUserTodos,
	}

	for _, op := range operations {
		if _, ok := table[op]; !ok {
			return nil, fmt.Errorf("no resolver registered for operation %s", op)
		}
	}

	return &Dispatcher{resolvers: table, logger: logger}, nil
}

// Dispatch invokes the resolver for the event's field. Validation
// failures are reshaped into a message enumerating every offending
// field; all other failures propagate unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	field := event.Info.FieldName

	d.logger.Info("handling invocation",
		zap.String("field", field),
		zap.String("sub", event.Identity.Sub),
	)

	handler, ok := d.resolvers[field]
	if !ok {
		err := fmt.Errorf("resolver not found for field: %s", field)
		d.logger.Error("unknown operation", zap.String("field", field))
		return nil, err
	}

	result, err := handler(ctx, event)
	if err != nil {
		d.logger.Error("resolver failed",
			zap.String("field", field),
			zap.Error(err),
		)

		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			detail, merr := json.Marshal(verrs.Fields)
			if merr == nil {
				return nil, fmt.Errorf("Validation failed: %s", detail)
			}
		}
		return nil, err
	}

	return result, nil
}
