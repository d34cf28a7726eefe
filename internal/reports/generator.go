// Package reports computes per-user summary statistics over the todo
// table.
package reports

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"todo-backend/internal/domain/todo"
	"todo-backend/internal/repository"
)

// upcomingWindow bounds how far ahead a due date may lie and still count
// as upcoming; upcomingLimit caps how many upcoming items are reported.
const (
	upcomingWindow = 7 * 24 * time.Hour
	upcomingLimit  = 10
)

// PriorityBreakdown counts todos per priority bucket.
type PriorityBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
	Urgent int `json:"urgent"`
}

// Summary is the report payload.
type Summary struct {
	TotalTodos     int               `json:"totalTodos"`
	CompletedTodos int               `json:"completedTodos"`
	PendingTodos   int               `json:"pendingTodos"`
	ByPriority     PriorityBreakdown `json:"byPriority"`
	UpcomingTodos  []todo.Todo       `json:"upcomingTodos"`
	OverdueTodos   []todo.Todo       `json:"overdueTodos"`
}

// Generator builds summaries from a full owner-filtered scan of the
// table.
type Generator struct {
	repo   repository.TodoRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a report generator backed by repo.
func NewGenerator(repo repository.TodoRepository, logger *zap.Logger) *Generator {
	return &Generator{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Generate fetches every todo owned by userID and computes the summary.
// When startDate or endDate is set, only todos created in that range
// participate.
func (g *Generator) Generate(ctx context.Context, userID, startDate, endDate string) (*Summary, error) {
	todos, err := g.fetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if startDate != "" || endDate != "" {
		filtered := todos[:0]
		for _, t := range todos {
			if startDate != "" && t.CreatedDate < startDate {
				continue
			}
			if endDate != "" && t.CreatedDate > endDate {
				continue
			}
			filtered = append(filtered, t)
		}
		todos = filtered
	}

	summary := &Summary{
		TotalTodos:    len(todos),
		UpcomingTodos: []todo.Todo{},
		OverdueTodos:  []todo.Todo{},
	}

	now := g.now()
	horizon := now.Add(upcomingWindow)

	type dated struct {
		item todo.Todo
		due  time.Time
	}
	var upcoming, overdue []dated

	for _, t := range todos {
		if t.Completed {
			summary.CompletedTodos++
		}

		switch t.Priority {
		case todo.PriorityLow:
			summary.ByPriority.Low++
		case todo.PriorityMedium:
			summary.ByPriority.Medium++
		case todo.PriorityHigh:
			summary.ByPriority.High++
		case todo.PriorityUrgent:
			summary.ByPriority.Urgent++
		}

		if t.Completed || t.DueDate == "" {
			continue
		}
		due, err := todo.ParseDate(t.DueDate)
		if err != nil {
			continue
		}
		if !due.After(horizon) {
			upcoming = append(upcoming, dated{item: t, due: due})
		}
		if !due.After(now) {
			overdue = append(overdue, dated{item: t, due: due})
		}
	}

	summary.PendingTodos = summary.TotalTodos - summary.CompletedTodos

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].due.Before(upcoming[j].due) })
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].due.Before(overdue[j].due) })

	for i, d := range upcoming {
		if i == upcomingLimit {
			break
		}
		summary.UpcomingTodos = append(summary.UpcomingTodos, d.item)
	}
	for _, d := range overdue {
		summary.OverdueTodos = append(summary.OverdueTodos, d.item)
	}

	g.logger.Info("generated report",
		zap.String("userId", userID),
		zap.Int("totalTodos", summary.TotalTodos),
	)
	return summary, nil
}

// fetchAll follows the scan's continuation cursor until exhaustion.
func (g *Generator) fetchAll(ctx context.Context, userID string) ([]todo.Todo, error) {
	var todos []todo.Todo
	nextToken := ""
	for {
		page, err := g.repo.Scan(ctx, userID, nil, 0, nextToken)
		if err != nil {
			return nil, err
		}
		todos = append(todos, page.Items...)
		if page.NextToken == "" {
			return todos, nil
		}
		nextToken = page.NextToken
	}
}
