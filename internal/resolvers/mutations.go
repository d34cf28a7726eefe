package resolvers

import (
	"context"
	"time"

	"todo-backend/internal/appsync"
	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
	"todo-backend/internal/validation"
)

// CreateTodo persists a new todo owned by the caller. The id and both
// timestamps are server-generated.
func (r *Resolver) CreateTodo(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseCreateTodo(event.Arguments)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC().Format(time.RFC3339)
	t := &todo.Todo{
		ID:          r.newID(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Tags:        in.Tags,
		UserID:      event.Identity.Sub,
		Completed:   false,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := r.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTodo applies the fields present in the request to the caller's
// todo and returns the record as stored after the write.
func (r *Resolver) UpdateTodo(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseUpdateTodo(event.Arguments)
	if err != nil {
		return nil, err
	}

	var changes []repository.Field
	if in.Title != nil {
		changes = append(changes, repository.Field{Name: "title", Value: *in.Title})
	}
	if in.Description != nil {
		changes = append(changes, repository.Field{Name: "description", Value: *in.Description})
	}
	if in.DueDate != nil {
		changes = append(changes, repository.Field{Name: "dueDate", Value: *in.DueDate})
	}
	if in.Priority != nil {
		changes = append(changes, repository.Field{Name: "priority", Value: *in.Priority})
	}
	if in.Tags != nil {
		changes = append(changes, repository.Field{Name: "tags", Value: *in.Tags})
	}
	if in.Completed != nil {
		changes = append(changes, repository.Field{Name: "completed", Value: *in.Completed})
	}

	return r.repo.Update(ctx, in.ID, event.Identity.Sub, changes)
}

// DeleteTodo removes the caller's todo.
func (r *Resolver) DeleteTodo(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseGetTodo(event.Arguments)
	if err != nil {
		return nil, err
	}

	if err := r.repo.Delete(ctx, in.ID, event.Identity.Sub); err != nil {
		return nil, err
	}
	return true, nil
}

// BatchDeleteTodos removes up to 100 todos and returns the number of ids
// submitted. Deletion proceeds chunk by chunk; a failure partway leaves
// earlier chunks deleted.
func (r *Resolver) BatchDeleteTodos(ctx context.Context, event *appsync.ResolverEvent) (any, error) {
	in, err := validation.ParseBatchDelete(event.Arguments)
	if err != nil {
		return nil, err
	}

	deleted, err := r.repo.BatchDelete(ctx, in.IDs)
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
