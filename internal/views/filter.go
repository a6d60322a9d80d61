package views

import (
	"time"

	"taskdeck/internal/models"
)

// Filters are pure set intersections: each returns a new slice whose
// elements satisfy the predicate, preserving input order. Applying
// several in sequence narrows the working set regardless of order.

// FilterByCompletion keeps tasks whose completed flag matches.
func FilterByCompletion(tasks []models.Task, completed bool) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Completed == completed })
}

// FilterByStatus keeps tasks with exactly the given status.
func FilterByStatus(tasks []models.Task, status models.Status) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Status == status })
}

// FilterByPriority keeps tasks with exactly the given priority.
func FilterByPriority(tasks []models.Task, priority models.Priority) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Priority == priority })
}

// FilterOverdue keeps incomplete tasks whose due date has passed.
func FilterOverdue(tasks []models.Task, now time.Time) []models.Task {
	return filter(tasks, func(t models.Task) bool {
		return !t.Completed && t.DueDate != nil && IsOverdue(*t.DueDate, now)
	})
}

// FilterDueSoon keeps incomplete tasks due within the horizon.
func FilterDueSoon(tasks []models.Task, now time.Time, horizonDays int) []models.Task {
	return filter(tasks, func(t models.Task) bool {
		return !t.Completed && t.DueDate != nil && IsDueSoon(*t.DueDate, now, horizonDays)
	})
}

func filter(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
