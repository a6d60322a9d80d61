package views

import (
	"testing"
	"time"

	"taskdeck/internal/models"
)

func sampleTasks(now time.Time) []models.Task {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	nextMonth := now.AddDate(0, 1, 0)
	return []models.Task{
		{ID: 1, Title: "a", Status: models.StatusTodo, Priority: models.PriorityHigh, DueDate: &yesterday},
		{ID: 2, Title: "b", Status: models.StatusInProgress, Priority: models.PriorityMedium, DueDate: &tomorrow},
		{ID: 3, Title: "c", Status: models.StatusDone, Priority: models.PriorityHigh, Completed: true},
		{ID: 4, Title: "d", Status: models.StatusTodo, Priority: models.PriorityLow},
		{ID: 5, Title: "e", Status: models.StatusTodo, Priority: models.PriorityHigh, DueDate: &nextMonth},
	}
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Task, want ...int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("ids = %v, want %v", ids(got), want)
		}
	}
}

func TestFiltersNarrow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := sampleTasks(now)

	byStatus := FilterByStatus(tasks, models.StatusTodo)
	if len(byStatus) > len(tasks) {
		t.Fatal("filter grew the collection")
	}
	for _, task := range byStatus {
		if task.Status != models.StatusTodo {
			t.Errorf("task %d leaked through status filter", task.ID)
		}
	}
	assertIDs(t, byStatus, 1, 4, 5)

	assertIDs(t, FilterByPriority(tasks, models.PriorityHigh), 1, 3, 5)
	assertIDs(t, FilterByCompletion(tasks, true), 3)
	assertIDs(t, FilterOverdue(tasks, now), 1)
	assertIDs(t, FilterDueSoon(tasks, now, 3), 2)
}

// Completed tasks never appear in temporal filters even with a due
// date in range.
func TestTemporalFiltersGateOnIncomplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tasks := []models.Task{
		{ID: 1, Completed: true, Status: models.StatusDone, DueDate: &yesterday},
	}
	if got := FilterOverdue(tasks, now); len(got) != 0 {
		t.Errorf("completed task classified overdue")
	}
	if got := FilterDueSoon([]models.Task{{ID: 2, Completed: true, DueDate: &now}}, now, 3); len(got) != 0 {
		t.Errorf("completed task classified due soon")
	}
}

func TestSortByPriorityDescStable(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := sampleTasks(now)
	sorted := SortByPriorityDesc(tasks)
	// Equal priorities keep their input order: 1 before 3 before 5.
	assertIDs(t, sorted, 1, 3, 5, 2, 4)
	// Input untouched.
	assertIDs(t, tasks, 1, 2, 3, 4, 5)
}

func TestSortByDueDateAscNilLast(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sorted := SortByDueDateAsc(sampleTasks(now))
	assertIDs(t, sorted, 1, 2, 5, 3, 4)
}

func TestSortByTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: 1, CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: 2, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(1 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(1 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
	assertIDs(t, SortByCreatedDesc(tasks), 2, 3, 1)
	assertIDs(t, SortByUpdatedDesc(tasks), 1, 3, 2)
}

func TestApplyQueryComposition(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := sampleTasks(now)

	incomplete := false
	got := ApplyQuery(tasks, Query{
		Completed: &incomplete,
		Status:    models.StatusTodo,
		Priority:  models.PriorityHigh,
		Sort:      SortDueDate,
		Now:       now,
	})
	assertIDs(t, got, 1, 5)

	// Filter order is irrelevant: the same intersection through
	// individual filters matches.
	alt := FilterByPriority(FilterByStatus(FilterByCompletion(tasks, false), models.StatusTodo), models.PriorityHigh)
	if len(alt) != len(got) {
		t.Fatalf("composed filters disagree: %v vs %v", ids(alt), ids(got))
	}
}

func TestApplyQueryDueWindows(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := sampleTasks(now)
	assertIDs(t, ApplyQuery(tasks, Query{Due: DueOverdue, Now: now}), 1)
	assertIDs(t, ApplyQuery(tasks, Query{Due: DueSoon, Now: now, HorizonDays: 3}), 2)
	// Zero horizon falls back to the default window.
	assertIDs(t, ApplyQuery(tasks, Query{Due: DueSoon, Now: now}), 2)
}
