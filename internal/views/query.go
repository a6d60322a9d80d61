package views

import (
	"time"

	"taskdeck/internal/models"
)

// Due window selectors accepted by Query.Due.
const (
	DueOverdue = "overdue"
	DueSoon    = "soon"
)

// Sort keys accepted by Query.Sort.
const (
	SortPriority = "priority"
	SortDueDate  = "due_date"
	SortCreated  = "created_at"
	SortUpdated  = "updated_at"
)

// Query bundles the filter and sort selections for a task list. Now is
// read once by the caller so every temporal predicate in one
// invocation agrees on the clock.
type Query struct {
	Completed   *bool
	Status      models.Status
	Priority    models.Priority
	Due         string
	Sort        string
	Now         time.Time
	HorizonDays int
}

// ApplyQuery narrows and orders the collection. Filters are
// intersections, so application order does not change the result; the
// sort runs last and is stable.
func ApplyQuery(tasks []models.Task, q Query) []models.Task {
	out := tasks
	if q.Completed != nil {
		out = FilterByCompletion(out, *q.Completed)
	}
	if q.Status != "" {
		out = FilterByStatus(out, q.Status)
	}
	if q.Priority != 0 {
		out = FilterByPriority(out, q.Priority)
	}
	switch q.Due {
	case DueOverdue:
		out = FilterOverdue(out, q.Now)
	case DueSoon:
		horizon := q.HorizonDays
		if horizon <= 0 {
			horizon = DefaultDueSoonHorizonDays
		}
		out = FilterDueSoon(out, q.Now, horizon)
	}
	switch q.Sort {
	case SortPriority:
		out = SortByPriorityDesc(out)
	case SortDueDate:
		out = SortByDueDateAsc(out)
	case SortCreated:
		out = SortByCreatedDesc(out)
	case SortUpdated:
		out = SortByUpdatedDesc(out)
	default:
		out = clone(out)
	}
	return out
}
