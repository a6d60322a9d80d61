package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"taskdeck/internal/models"
	"taskdeck/internal/service"
	"taskdeck/pkg/logger"
)

// Todos exposes todo CRUD. The authenticated user id comes from the
// JWT middleware; row ownership is the only authorization rule.
type Todos struct {
	svc *service.Todo
}

// NewTodos returns a Todos controller.
func NewTodos(svc *service.Todo) *Todos {
	return &Todos{svc: svc}
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type updateTodoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ListByUser returns the todos owned by the path user.
func (h *Todos) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid user id", nil)
		return
	}
	if userID != authedUser(c) {
		respond(c, http.StatusForbidden, "Forbidden", nil)
		return
	}
	todos, err := h.svc.TodosByUser(ctx, userID)
	if err != nil {
		logger.Error(ctx, "List todos failed", "error", err)
		respond(c, http.StatusInternalServerError, "Failed to get todos", nil)
		return
	}
	respond(c, http.StatusOK, "success", todos)
}

// Create inserts a todo owned by the authenticated user.
func (h *Todos) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	todo, err := h.svc.CreateTodo(ctx, models.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      authedUser(c),
	})
	if err != nil {
		logger.Error(ctx, "Create todo failed", "error", err)
		respond(c, http.StatusInternalServerError, "Failed to create todo", nil)
		return
	}
	respond(c, http.StatusCreated, "Todo created", todo)
}

// Update replaces a todo's editable fields.
func (h *Todos) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	todo, err := h.svc.UpdateTodo(ctx, models.UpdateTodoInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		logger.Error(ctx, "Update todo failed", "error", err, "id", id)
		respond(c, http.StatusInternalServerError, "Failed to update todo", nil)
		return
	}
	respond(c, http.StatusOK, "Todo updated", todo)
}

// Delete removes a todo; the store cascades its tasks.
func (h *Todos) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, "Invalid todo id", nil)
		return
	}
	if err := h.svc.DeleteTodo(ctx, id, authedUser(c)); err != nil {
		logger.Error(ctx, "Delete todo failed", "error", err, "id", id)
		respond(c, http.StatusInternalServerError, "Failed to delete todo", nil)
		return
	}
	respond(c, http.StatusOK, "Todo deleted", nil)
}

func authedUser(c *gin.Context) int64 {
	v, _ := c.Get("user")
	id, _ := v.(int64)
	return id
}
