package store

import (
	"context"
	"database/sql"
	"time"

	"taskdeck/internal/gateway"
	"taskdeck/internal/models"
	"taskdeck/pkg/logger"
)

const (
	todoTable = "todos"
	taskTable = "tasks"
)

var (
	todoColumns = []string{"id", "title", "description", "user_id", "completed", "created_at", "updated_at"}
	taskColumns = []string{"id", "todo_id", "title", "description", "completed", "status", "priority", "due_date", "created_at", "updated_at"}
)

// TodoStore is the capability contract for todo and task rows. Every
// method maps onto exactly one gateway call.
type TodoStore interface {
	ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error)
	CreateTodo(ctx context.Context, data models.CreateTodoInput) (*models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error

	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasksByTodo(ctx context.Context, todoID int64) ([]models.Task, error)
	ListTasksDueBy(ctx context.Context, before time.Time) ([]models.Task, error)
	CreateTask(ctx context.Context, data models.CreateTaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type todoStore struct {
	gw gateway.Store
	db *sql.DB
}

// NewTodoStore returns a TodoStore backed by the given gateway. The
// pool is only used for the reminder scan, which needs a range
// predicate the equality-only gateway cannot express.
func NewTodoStore(gw gateway.Store, db *sql.DB) TodoStore {
	return &todoStore{gw: gw, db: db}
}

func (s *todoStore) ListTodosByUser(ctx context.Context, userID int64) ([]models.Todo, error) {
	rows, err := s.gw.Select(ctx, todoTable, todoColumns, gateway.Filters{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.UserID, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			logger.Error(ctx, "Store scan todo failed", "error", err)
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *todoStore) CreateTodo(ctx context.Context, data models.CreateTodoInput) (*models.Todo, error) {
	row := s.gw.Insert(ctx, todoTable, gateway.Values{
		"title":       data.Title,
		"description": data.Description,
		"user_id":     data.UserID,
	}, todoColumns)
	return scanTodo(ctx, row)
}

func (s *todoStore) UpdateTodo(ctx context.Context, todo models.Todo) (*models.Todo, error) {
	row := s.gw.Update(ctx, todoTable, gateway.Values{
		"title":       todo.Title,
		"description": todo.Description,
		"completed":   todo.Completed,
		"updated_at":  time.Now(),
	}, gateway.Filters{"id": todo.ID}, todoColumns)
	return scanTodo(ctx, row)
}

func (s *todoStore) DeleteTodo(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, todoTable, gateway.Filters{"id": id})
}

// GetTask returns the task with the given id, or nil when absent.
func (s *todoStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	rows, err := s.gw.Select(ctx, taskTable, taskColumns, gateway.Filters{"id": id})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var t models.Task
	if err := rows.Scan(&t.ID, &t.TodoID, &t.Title, &t.Description, &t.Completed, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		logger.Error(ctx, "Store scan task failed", "error", err)
		return nil, err
	}
	return &t, nil
}

func (s *todoStore) ListTasksByTodo(ctx context.Context, todoID int64) ([]models.Task, error) {
	rows, err := s.gw.Select(ctx, taskTable, taskColumns, gateway.Filters{"todo_id": todoID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(ctx, rows)
}

// ListTasksDueBy returns incomplete tasks whose due date falls on or
// before the given instant.
func (s *todoStore) ListTasksDueBy(ctx context.Context, before time.Time) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, todo_id, title, description, completed, status, priority, due_date, created_at, updated_at
		 FROM tasks WHERE completed = FALSE AND due_date IS NOT NULL AND due_date <= $1`, before)
	if err != nil {
		logger.Error(ctx, "Store list due tasks failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	return collectTasks(ctx, rows)
}

func (s *todoStore) CreateTask(ctx context.Context, data models.CreateTaskInput) (*models.Task, error) {
	status := data.Status
	if status == "" {
		status = models.StatusTodo
	}
	priority := data.Priority
	if priority == 0 {
		priority = models.PriorityMedium
	}
	row := s.gw.Insert(ctx, taskTable, gateway.Values{
		"todo_id":     data.TodoID,
		"title":       data.Title,
		"description": data.Description,
		"completed":   status == models.StatusDone,
		"status":      string(status),
		"priority":    int(priority),
		"due_date":    data.DueDate,
	}, taskColumns)
	return scanTask(ctx, row)
}

func (s *todoStore) UpdateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	row := s.gw.Update(ctx, taskTable, gateway.Values{
		"title":       task.Title,
		"description": task.Description,
		"completed":   task.Completed,
		"status":      string(task.Status),
		"priority":    int(task.Priority),
		"due_date":    task.DueDate,
		"updated_at":  time.Now(),
	}, gateway.Filters{"id": task.ID}, taskColumns)
	return scanTask(ctx, row)
}

func (s *todoStore) DeleteTask(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, taskTable, gateway.Filters{"id": id})
}

func scanTodo(ctx context.Context, row *sql.Row) (*models.Todo, error) {
	var t models.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.UserID, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		logger.Error(ctx, "Store scan todo failed", "error", err)
		return nil, err
	}
	return &t, nil
}

func scanTask(ctx context.Context, row *sql.Row) (*models.Task, error) {
	var t models.Task
	if err := row.Scan(&t.ID, &t.TodoID, &t.Title, &t.Description, &t.Completed, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		logger.Error(ctx, "Store scan task failed", "error", err)
		return nil, err
	}
	return &t, nil
}

func collectTasks(ctx context.Context, rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.TodoID, &t.Title, &t.Description, &t.Completed, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			logger.Error(ctx, "Store scan task failed", "error", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
