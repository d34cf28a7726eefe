package validation

import (
	"encoding/json"
	"errors"

	"todo-backend/internal/domain/todo"
)

// CreateTodoInput is the normalized payload for createTodo.
type CreateTodoInput struct {
	Title       string        `json:"title" validate:"required,max=100"`
	Description string        `json:"description" validate:"max=500"`
	DueDate     string        `json:"dueDate" validate:"omitempty,isodate"`
	Priority    todo.Priority `json:"priority" validate:"required,priority"`
	Tags        []string      `json:"tags" validate:"max=10,dive,min=1,max=30"`
}

// UpdateTodoInput is the normalized payload for updateTodo. Nil pointers
// mark fields absent from the request; only present fields are updated.
type UpdateTodoInput struct {
	ID          string         `json:"id" validate:"required,todoid"`
	Title       *string        `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string        `json:"description" validate:"omitempty,max=500"`
	DueDate     *string        `json:"dueDate" validate:"omitempty,isodate"`
	Priority    *todo.Priority `json:"priority" validate:"omitempty,priority"`
	Tags        *[]string      `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Completed   *bool          `json:"completed"`
}

// GetTodoInput is the normalized payload for getTodo and deleteTodo.
type GetTodoInput struct {
	ID string `json:"id" validate:"required,todoid"`
}

// TodoFilter narrows a listTodos scan. All predicates are optional; the
// date bounds apply to dueDate.
type TodoFilter struct {
	Priority  *todo.Priority `json:"priority" validate:"omitempty,priority"`
	Completed *bool          `json:"completed"`
	StartDate *string        `json:"startDate" validate:"omitempty,isodate"`
	EndDate   *string        `json:"endDate" validate:"omitempty,isodate"`
	Tags      []string       `json:"tags" validate:"omitempty,dive,min=1,max=30"`
}

// ListTodosInput is the normalized payload for listTodos.
type ListTodosInput struct {
	Filter    *TodoFilter `json:"filter"`
	Limit     int         `json:"limit" validate:"min=1,max=100"`
	NextToken string      `json:"nextToken"`
}

// BatchDeleteInput is the normalized payload for batchDeleteTodos.
type BatchDeleteInput struct {
	IDs []string `json:"ids" validate:"required,min=1,max=100,dive,todoid"`
}

// DefaultListLimit is the page size used when the caller supplies none.
const DefaultListLimit = 20

func unmarshalArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Errors{Fields: []FieldError{{Field: "arguments", Message: "Invalid arguments payload"}}}
	}
	return nil
}

// ParseCreateTodo validates and sanitizes createTodo arguments.
func ParseCreateTodo(raw json.RawMessage) (*CreateTodoInput, error) {
	var args struct {
		Input CreateTodoInput `json:"input"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return nil, err
	}

	in := args.Input
	in.Title = Sanitize(in.Title)
	in.Description = Sanitize(in.Description)
	for i, tag := range in.Tags {
		in.Tags[i] = Sanitize(tag)
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}

	if err := check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseUpdateTodo validates and sanitizes updateTodo arguments, keeping
// track of which fields were present.
func ParseUpdateTodo(raw json.RawMessage) (*UpdateTodoInput, error) {
	var args struct {
		Input UpdateTodoInput `json:"input"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return nil, err
	}

	in := args.Input
	if in.Title != nil {
		*in.Title = Sanitize(*in.Title)
	}
	if in.Description != nil {
		*in.Description = Sanitize(*in.Description)
	}
	if in.Tags != nil {
		for i, tag := range *in.Tags {
			(*in.Tags)[i] = Sanitize(tag)
		}
	}

	errs := &Errors{}
	// The validator skips pointer fields whose value is the zero value, so
	// present-but-empty strings need explicit checks.
	if in.Title != nil && *in.Title == "" {
		errs.Add("title", "Title is required")
	}
	if in.DueDate != nil && *in.DueDate == "" {
		errs.Add("dueDate", "Invalid date format")
	}
	if in.Priority != nil && *in.Priority == "" {
		errs.Add("priority", "Invalid priority")
	}

	if err := check(&in); err != nil {
		var verrs *Errors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		errs.Fields = append(errs.Fields, verrs.Fields...)
	}
	if err := errs.errOrNil(); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseGetTodo validates getTodo and deleteTodo arguments.
func ParseGetTodo(raw json.RawMessage) (*GetTodoInput, error) {
	var in GetTodoInput
	if err := unmarshalArgs(raw, &in); err != nil {
		return nil, err
	}
	if err := check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseListTodos validates listTodos arguments, applying the default
// page size and sanitizing any tag predicates.
func ParseListTodos(raw json.RawMessage) (*ListTodosInput, error) {
	var in ListTodosInput
	if err := unmarshalArgs(raw, &in); err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = DefaultListLimit
	}
	if in.Filter != nil {
		for i, tag := range in.Filter.Tags {
			in.Filter.Tags[i] = Sanitize(tag)
		}
	}

	if err := check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseBatchDelete validates batchDeleteTodos arguments.
func ParseBatchDelete(raw json.RawMessage) (*BatchDeleteInput, error) {
	var in BatchDeleteInput
	if err := unmarshalArgs(raw, &in); err != nil {
		return nil, err
	}
	if err := check(&in); err != nil {
		return nil, err
	}
	return &in, nil
}
