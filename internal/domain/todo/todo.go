// Package todo defines the todo record persisted in DynamoDB and shared
// across the resolver and report Lambdas.
package todo

import (
	"fmt"
	"time"
)

// Priority is the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Todo is a single todo item, keyed by ID. UserID is set at creation from
// the caller's identity and is never changed by updates. CreatedDate is
// written once; UpdatedDate is refreshed on every successful mutation.
type Todo struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Title       string   `json:"title" dynamodbav:"title"`
	Description string   `json:"description,omitempty" dynamodbav:"description,omitempty"`
	DueDate     string   `json:"dueDate,omitempty" dynamodbav:"dueDate,omitempty"`
	Priority    Priority `json:"priority" dynamodbav:"priority"`
	Tags        []string `json:"tags" dynamodbav:"tags"`
	UserID      string   `json:"userId" dynamodbav:"userId"`
	Completed   bool     `json:"completed" dynamodbav:"completed"`
	CreatedDate string   `json:"createdDate" dynamodbav:"createdDate"`
	UpdatedDate string   `json:"updatedDate" dynamodbav:"updatedDate"`
}

// dateLayouts are the accepted timestamp formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date or date-time string in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
