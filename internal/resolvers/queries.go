package resolvers

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"todo-backend/internal/appsync"
	"todo-backend/internal/repository"
	"todo-backend/internal/validation"
)

// GetTodo fetches one todo by id. A todo owned by another user resolves
// to null exactly like a missing one, so callers cannot probe for the
// existence of other users' records.
func (r *Resolver) GetTodo(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseGetTodo(event.Arguments)
	if err != nil {
		return nil, err
	}

	t, err := r.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.UserID != event.Identity.Sub {
		return nil, nil
	}
	return t, nil
}

// ListTodos pages through the caller's todos, optionally narrowed by
// priority, completion state, or due-date range.
func (r *Resolver) ListTodos(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseListTodos(event.Arguments)
	if err != nil {
		return nil, err
	}

	var filter *repository.ListFilter
	if in.Filter != nil {
		filter = &repository.ListFilter{
			Priority:  in.Filter.Priority,
			Completed: in.Filter.Completed,
			DueAfter:  in.Filter.StartDate,
			DueBefore: in.Filter.EndDate,
		}
	}

	page, err := r.repo.Scan(ctx, event.Identity.Sub, filter, int32(in.Limit), in.NextToken)
	if err != nil {
		return nil, err
	}

	result := &ListTodosResult{
		Items: page.Items,
		Total: len(page.Items),
	}
	if page.NextToken != "" {
		result.NextToken = &page.NextToken
	}
	return result, nil
}

// GetUserTodos returns every todo the caller owns, via the owner index.
// An explicit userId argument is accepted for schema compatibility but
// only honored when it names the caller; anyone else's id falls back to
// the caller's own records.
func (r *Resolver) GetUserTodos(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	var args struct {
		UserID string `json:"userId"`
	}
	if len(event.Arguments) > 0 {
		// A malformed payload just means no explicit target.
		_ = json.Unmarshal(event.Arguments, &args)
	}

	owner := event.Identity.Sub
	if args.UserID != "" && args.UserID != owner {
		r.logger.Warn("getUserTodos requested another user's records; serving caller's own",
			zap.String("requested", args.UserID),
			zap.String("caller", owner),
		)
	}

	return r.repo.QueryByOwner(ctx, owner)
}
