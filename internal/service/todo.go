package service

import (
	"context"

	"taskdeck/internal/models"
	"taskdeck/internal/queries"
	"taskdeck/internal/store"
)

// Todo delegates CRUD to the store and drives the read cache: list
// reads go through the query orchestrator, successful mutations
// invalidate the dependent entries. A failed mutation invalidates
// nothing.
type Todo struct {
	store   store.TodoStore
	queries *queries.Orchestrator
}

// NewTodo returns a Todo service over the given store and orchestrator.
func NewTodo(s store.TodoStore, q *queries.Orchestrator) *Todo {
	return &Todo{store: s, queries: q}
}

// TodosByUser lists the user's todos, cache-first.
func (t *Todo) TodosByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	return t.queries.TodosByUser(ctx, userID, func(ctx context.Context) ([]models.Todo, error) {
		return t.store.ListTodosByUser(ctx, userID)
	})
}

// TasksByTodo lists the todo's tasks, cache-first.
func (t *Todo) TasksByTodo(ctx context.Context, todoID int64) ([]models.Task, error) {
	return t.queries.TasksByTodo(ctx, todoID, func(ctx context.Context) ([]models.Task, error) {
		return t.store.ListTasksByTodo(ctx, todoID)
	})
}

// CreateTodo inserts a todo and invalidates the owner's todo list.
func (t *Todo) CreateTodo(ctx context.Context, data models.CreateTodoInput) (*models.Todo, error) {
	todo, err := t.store.CreateTodo(ctx, data)
	if err != nil {
		return nil, err
	}
	t.queries.InvalidateTodosByUser(ctx, todo.UserID)
	return todo, nil
}

// UpdateTodo replaces a todo's editable fields.
func (t *Todo) UpdateTodo(ctx context.Context, data models.UpdateTodoInput) (*models.Todo, error) {
	todo, err := t.store.UpdateTodo(ctx, models.Todo{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
	})
	if err != nil {
		return nil, err
	}
	t.queries.InvalidateTodosByUser(ctx, todo.UserID)
	return todo, nil
}

// DeleteTodo removes a todo. The store cascades task removal, so the
// todo's task list is invalidated along with the owner's todo list.
func (t *Todo) DeleteTodo(ctx context.Context, id, userID int64) error {
	if err := t.store.DeleteTodo(ctx, id); err != nil {
		return err
	}
	t.queries.InvalidateTodosByUser(ctx, userID)
	t.queries.InvalidateTasksByTodo(ctx, id)
	return nil
}

// CreateTask inserts a task and invalidates its todo's task list.
func (t *Todo) CreateTask(ctx context.Context, data models.CreateTaskInput) (*models.Task, error) {
	task, err := t.store.CreateTask(ctx, data)
	if err != nil {
		return nil, err
	}
	t.queries.InvalidateTasksByTodo(ctx, task.TodoID)
	return task, nil
}

// UpdateTask replaces a task's editable fields, keeping completed and
// status in sync. The incoming payload is diffed against the current
// row: a status change is authoritative and derives the completed
// flag; otherwise a completed toggle drives the status.
func (t *Todo) UpdateTask(ctx context.Context, data models.UpdateTaskInput) (*models.Task, error) {
	current, err := t.store.GetTask(ctx, data.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrTaskNotFound
	}
	task := models.Task{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Priority:    data.Priority,
		DueDate:     data.DueDate,
		Status:      current.Status,
		Completed:   current.Completed,
	}
	if task.Priority == 0 {
		task.Priority = current.Priority
	}
	switch {
	case data.Status != "" && data.Status != current.Status:
		task.SetStatus(data.Status)
	case data.Completed != nil && *data.Completed != current.Completed:
		task.SetCompleted(*data.Completed)
	}
	updated, err := t.store.UpdateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	t.queries.InvalidateTasksByTodo(ctx, updated.TodoID)
	return updated, nil
}

// DeleteTask removes a task. The parent todo id is looked up first so
// the right task list can be invalidated afterwards.
func (t *Todo) DeleteTask(ctx context.Context, id int64) error {
	task, err := t.store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrTaskNotFound
	}
	if err := t.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	t.queries.InvalidateTasksByTodo(ctx, task.TodoID)
	return nil
}
