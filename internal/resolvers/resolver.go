// Package resolvers implements the AppSync field resolvers for the todo
// API and the dispatcher that routes invocations to them.
package resolvers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-backend/internal/appsync"
	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
)

// Handler resolves one GraphQL field.
type Handler func(ctx context.Context, event *appsync.ResolverEvent) (any, error)

// Resolver holds the collaborators shared by all field resolvers.
type Resolver struct {
	repo   repository.TodoRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates a Resolver backed by repo.
func New(repo repository.TodoRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ListTodosResult is the listTodos response envelope. Total counts the
// items in this page, not the full result set; NextToken is nil once the
// scan is exhausted.
type ListTodosResult struct {
	Items     []todo.Todo `json:"items"`
	NextToken *string     `json:"nextToken"`
	Total     int         `json:"total"`
}
