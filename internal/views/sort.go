package views

import (
	"sort"

	"taskdeck/internal/models"
)

// Sorts are stable and never mutate their input: ties keep their
// relative input order and a new slice is returned.

// SortByPriorityDesc orders high priority first.
func SortByPriorityDesc(tasks []models.Task) []models.Task {
	out := clone(tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// SortByDueDateAsc orders earliest due date first; tasks with no due
// date sort last.
func SortByDueDateAsc(tasks []models.Task) []models.Task {
	out := clone(tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}

// SortByCreatedDesc orders newest first.
func SortByCreatedDesc(tasks []models.Task) []models.Task {
	out := clone(tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SortByUpdatedDesc orders most recently touched first.
func SortByUpdatedDesc(tasks []models.Task) []models.Task {
	out := clone(tasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func clone(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}
