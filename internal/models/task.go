package models

import "time"

// Status is a task lifecycle stage.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Priority is an ordered importance level: low < medium < high.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Task is a unit of work belonging to exactly one todo.
type Task struct {
	ID          int64      `json:"id"`
	TodoID      int64      `json:"todo_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetCompleted toggles the completed flag and keeps status in line:
// completing a task marks it done, un-completing it resets to todo.
func (t *Task) SetCompleted(done bool) {
	t.Completed = done
	if done {
		t.Status = StatusDone
	} else {
		t.Status = StatusTodo
	}
}

// SetStatus sets the lifecycle stage. Status is the authoritative
// field; completed is derived from it.
func (t *Task) SetStatus(s Status) {
	t.Status = s
	t.Completed = s == StatusDone
}

// CreateTaskInput is the shape for inserting a new task. Zero-value
// Status and Priority default to todo/medium at the access layer.
type CreateTaskInput struct {
	TodoID      int64      `json:"todo_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskInput replaces a task's editable fields. Completed is a
// pointer so an absent flag is distinguishable from an explicit false;
// when both Status and Completed are present, Status wins.
type UpdateTaskInput struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   *bool      `json:"completed,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ReminderEvent is the message payload published for tasks whose due
// date is inside the reminder window (or already past).
type ReminderEvent struct {
	TaskID      int64     `json:"task_id"`
	TodoID      int64     `json:"todo_id"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	Overdue     bool      `json:"overdue"`
	RequestedAt time.Time `json:"requested_at"`
}
