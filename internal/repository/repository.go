// Package repository defines the persistence gateway for the todo table.
package repository

import (
	"context"

	"todo-backend/internal/domain/todo"
)

// Field is one (attribute, value) pair of a partial update. Updates carry
// only the fields present in the request, in request order.
type Field struct {
	Name  string
	Value any
}

// ListFilter narrows a Scan. Nil members are not applied; the owner
// predicate is always applied by the gateway itself.
type ListFilter struct {
	Priority  *todo.Priority
	Completed *bool
	DueAfter  *string
	DueBefore *string
}

// Page is one page of scan results. NextToken is "" when the scan is
// exhausted.
type Page struct {
	Items     []todo.Todo
	NextToken string
}

// TodoRepository wraps one DynamoDB table holding todo records.
type TodoRepository interface {
	// GetByID fetches a record by id. Returns (nil, nil) when absent;
	// ownership is the caller's concern on this read path.
	GetByID(ctx context.Context, id string) (*todo.Todo, error)

	// Create persists a new record, failing with ErrConflict if the id is
	// already taken.
	Create(ctx context.Context, t *todo.Todo) error

	// Update applies the given fields to the record, refreshing
	// updatedDate, conditional on the record existing and being owned by
	// ownerID. Returns the full post-update record, or
	// ErrNotFoundOrForbidden.
	Update(ctx context.Context, id, ownerID string, changes []Field) (*todo.Todo, error)

	// Delete removes the record, conditional on existence and ownership.
	Delete(ctx context.Context, id, ownerID string) error

	// Scan pages through ownerID's records matching filter. A limit <= 0
	// means the store's native page size.
	Scan(ctx context.Context, ownerID string, filter *ListFilter, limit int32, nextToken string) (*Page, error)

	// QueryByOwner returns every record owned by ownerID via the owner
	// index. Never returns a nil slice.
	QueryByOwner(ctx context.Context, ownerID string) ([]todo.Todo, error)

	// BatchDelete removes ids in store-sized chunks, sequentially. It is
	// not atomic: on failure an unknown prefix of chunks has already been
	// applied, and the returned count covers only chunks submitted before
	// the failure.
	BatchDelete(ctx context.Context, ids []string) (int, error)
}
