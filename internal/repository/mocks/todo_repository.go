// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
)

// TodoRepository is a mock implementation of repository.TodoRepository.
type TodoRepository struct {
	mock.Mock
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

func (m *TodoRepository) GetByID(ctx context.Context, id string) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	var t *todo.Todo
	if v := args.Get(0); v != nil {
		t = v.(*todo.Todo)
	}
	return t, args.Error(1)
}

func (m *TodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TodoRepository) Update(ctx context.Context, id, ownerID string, changes []repository.Field) (*todo.Todo, error) {
	args := m.Called(ctx, id, ownerID, changes)
	var t *todo.Todo
	if v := args.Get(0); v != nil {
		t = v.(*todo.Todo)
	}
	return t, args.Error(1)
}

func (m *TodoRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *TodoRepository) Scan(ctx context.Context, ownerID string, filter *repository.ListFilter, limit int32, nextToken string) (*repository.Page, error) {
	args := m.Called(ctx, ownerID, filter, limit, nextToken)
	var p *repository.Page
	if v := args.Get(0); v != nil {
		p = v.(*repository.Page)
	}
	return p, args.Error(1)
}

func (m *TodoRepository) QueryByOwner(ctx context.Context, ownerID string) ([]todo.Todo, error) {
	args := m.Called(ctx, ownerID)
	var todos []todo.Todo
	if v := args.Get(0); v != nil {
		todos = v.([]todo.Todo)
	}
	return todos, args.Error(1)
}

func (m *TodoRepository) BatchDelete(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}
