package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"taskdeck/internal/models"
	"taskdeck/internal/service"
	"taskdeck/internal/views"
	"taskdeck/pkg/logger"
)

// Tasks exposes task CRUD plus the derived list view: the raw task
// rows filtered/sorted per query parameters, with progress computed
// over the unfiltered collection.
type Tasks struct {
	svc            *service.Todo
	dueSoonHorizon int
}

// NewTasks returns a Tasks controller.
func NewTasks(svc *service.Todo, dueSoonHorizonDays int) *Tasks {
	return &Tasks{svc: svc, dueSoonHorizon: dueSoonHorizonDays}
}

type createTaskRequest struct {
	TodoID      int64           `json:"todo_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
}

type updateTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Completed   *bool           `json:"completed"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date"`
}

type taskListData struct {
	Tasks    []models.Task  `json:"tasks"`
	Progress views.Progress `json:"progress"`
}

// ListByTodo returns the todo's tasks. Query parameters narrow and
// order the list: completed, status, priority, due=overdue|soon,
// sort=priority|due_date|created_at|updated_at. Progress always
// reflects the full collection.
func (h *Tasks) ListByTodo(c *gin.Context) {
	ctx := c.Request.Context()
	todoID, err := strconv.ParseInt(c.Param("todoId"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}
	tasks, err := h.svc.TasksByTodo(ctx, todoID)
	if err != nil {
		logger.Error(ctx, "List tasks failed", "error", err)
		respond(c, http.StatusInternalServerError, "Failed to get tasks", nil)
		return
	}
	q := views.Query{
		Status:      models.Status(c.Query("status")),
		Due:         c.Query("due"),
		Sort:        c.Query("sort"),
		Now:         time.Now(),
		HorizonDays: h.dueSoonHorizon,
	}
	if v, ok := c.GetQuery("completed"); ok {
		completed := v == "true"
		q.Completed = &completed
	}
	if v, ok := c.GetQuery("priority"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			q.Priority = models.Priority(p)
		}
	}
	respond(c, http.StatusOK, "success", taskListData{
		Tasks:    views.ApplyQuery(tasks, q),
		Progress: views.TodoProgress(tasks),
	})
}

// Create inserts a task under a todo.
func (h *Tasks) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	task, err := h.svc.CreateTask(ctx, models.CreateTaskInput{
		TodoID:      req.TodoID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		logger.Error(ctx, "Create task failed", "error", err)
		respond(c, http.StatusInternalServerError, "Failed to create task", nil)
		return
	}
	respond(c, http.StatusCreated, "Task created", task)
}

// Update replaces a task's editable fields; completed and status stay
// synchronized in the service.
func (h *Tasks) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid task id", nil)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	task, err := h.svc.UpdateTask(ctx, models.UpdateTaskInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		respond(c, http.StatusNotFound, "Task not found", nil)
		return
	case err != nil:
		logger.Error(ctx, "Update task failed", "error", err, "id", id)
		respond(c, http.StatusInternalServerError, "Failed to update task", nil)
		return
	}
	respond(c, http.StatusOK, "Task updated", task)
}

// Delete removes a task.
func (h *Tasks) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid task id", nil)
		return
	}
	err = h.svc.DeleteTask(ctx, id)
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		respond(c, http.StatusNotFound, "Task not found", nil)
		return
	case err != nil:
		logger.Error(ctx, "Delete task failed", "error", err, "id", id)
		respond(c, http.StatusInternalServerError, "Failed to delete task", nil)
		return
	}
	respond(c, http.StatusOK, "Task deleted", nil)
}
