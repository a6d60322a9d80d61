package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"taskdeck/internal/cache"
	"taskdeck/internal/models"
	"taskdeck/internal/queries"
	"taskdeck/internal/service"
)

// stubTodoStore serves canned rows. It keeps the controller tests
// about routing, auth and view shaping rather than persistence.
type stubTodoStore struct {
	todos map[int64][]models.Todo
	tasks map[int64][]models.Task
}

func (s *stubTodoStore) ListTodosByUser(_ context.Context, userID int64) ([]models.Todo, error) {
	return append([]models.Todo{}, s.todos[userID]...), nil
}

func (s *stubTodoStore) CreateTodo(_ context.Context, data models.CreateTodoInput) (*models.Todo, error) {
	t := models.Todo{ID: 100, Title: data.Title, Description: data.Description, UserID: data.UserID}
	s.todos[data.UserID] = append(s.todos[data.UserID], t)
	return &t, nil
}

func (s *stubTodoStore) UpdateTodo(_ context.Context, todo models.Todo) (*models.Todo, error) {
	return &todo, nil
}

func (s *stubTodoStore) DeleteTodo(_ context.Context, id int64) error { return nil }

func (s *stubTodoStore) GetTask(_ context.Context, id int64) (*models.Task, error) {
	for _, list := range s.tasks {
		for _, t := range list {
			if t.ID == id {
				copied := t
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (s *stubTodoStore) ListTasksByTodo(_ context.Context, todoID int64) ([]models.Task, error) {
	return append([]models.Task{}, s.tasks[todoID]...), nil
}

func (s *stubTodoStore) ListTasksDueBy(_ context.Context, before time.Time) ([]models.Task, error) {
	return nil, nil
}

func (s *stubTodoStore) CreateTask(_ context.Context, data models.CreateTaskInput) (*models.Task, error) {
	t := models.Task{ID: 200, TodoID: data.TodoID, Title: data.Title, Status: data.Status, Priority: data.Priority}
	s.tasks[data.TodoID] = append(s.tasks[data.TodoID], t)
	return &t, nil
}

func (s *stubTodoStore) UpdateTask(_ context.Context, task models.Task) (*models.Task, error) {
	return &task, nil
}

func (s *stubTodoStore) DeleteTask(_ context.Context, id int64) error { return nil }

// asUser stands in for the JWT middleware.
func asUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user", id) }
}

func newTodoRouter(t *testing.T, userID int64) (*gin.Engine, *stubTodoStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := &stubTodoStore{todos: map[int64][]models.Todo{}, tasks: map[int64][]models.Task{}}
	// nil redis client: the cache degrades to pass-through, which is
	// exactly what these tests want.
	svc := service.NewTodo(st, queries.New(cache.New(nil, 0)))
	todos := NewTodos(svc)
	tasks := NewTasks(svc, 3)
	r := gin.New()
	g := r.Group("/", asUser(userID))
	g.GET("/todos/user/:userId", todos.ListByUser)
	g.POST("/todos", todos.Create)
	g.DELETE("/todos/:id", todos.Delete)
	g.GET("/tasks/todo/:todoId", tasks.ListByTodo)
	g.POST("/tasks", tasks.Create)
	g.PUT("/tasks/:id", tasks.Update)
	g.DELETE("/tasks/:id", tasks.Delete)
	return r, st
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTodosOwnershipCheck(t *testing.T) {
	r, st := newTodoRouter(t, 7)
	st.todos[7] = []models.Todo{{ID: 1, Title: "groceries", UserID: 7}}

	if w := do(r, http.MethodGet, "/todos/user/8", ""); w.Code != http.StatusForbidden {
		t.Errorf("other user's list: status = %d, want 403", w.Code)
	}
	w := do(r, http.MethodGet, "/todos/user/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("own list: status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "groceries") {
		t.Errorf("body missing todo: %s", w.Body.String())
	}
}

func TestCreateTodoUsesTokenIdentity(t *testing.T) {
	r, st := newTodoRouter(t, 7)
	// The request never carries a user id; ownership comes from the
	// middleware-set identity.
	w := do(r, http.MethodPost, "/todos", `{"title":"groceries","user_id":99}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(st.todos[7]) != 1 || len(st.todos[99]) != 0 {
		t.Errorf("todo attributed to wrong user: %+v", st.todos)
	}
}

func TestTaskListViewShaping(t *testing.T) {
	r, st := newTodoRouter(t, 7)
	st.tasks[1] = []models.Task{
		{ID: 1, TodoID: 1, Title: "done one", Completed: true, Status: models.StatusDone, Priority: models.PriorityLow},
		{ID: 2, TodoID: 1, Title: "open one", Status: models.StatusTodo, Priority: models.PriorityHigh},
		{ID: 3, TodoID: 1, Title: "open two", Status: models.StatusTodo, Priority: models.PriorityMedium},
	}

	w := do(r, http.MethodGet, "/tasks/todo/1?completed=false&sort=priority", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Tasks []struct {
				ID int64 `json:"id"`
			} `json:"tasks"`
			Progress struct {
				Completed  int `json:"completed"`
				Total      int `json:"total"`
				Percentage int `json:"percentage"`
			} `json:"progress"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	gotIDs := []int64{}
	for _, task := range resp.Data.Tasks {
		gotIDs = append(gotIDs, task.ID)
	}
	// High priority first among the incomplete tasks.
	if len(gotIDs) != 2 || gotIDs[0] != 2 || gotIDs[1] != 3 {
		t.Errorf("ids = %v, want [2 3]", gotIDs)
	}
	// Progress covers all three rows, not the filtered pair.
	if resp.Data.Progress.Total != 3 || resp.Data.Progress.Completed != 1 {
		t.Errorf("progress = %+v", resp.Data.Progress)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	r, _ := newTodoRouter(t, 7)
	w := do(r, http.MethodPut, "/tasks/999", `{"title":"renamed"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	r, _ := newTodoRouter(t, 7)
	w := do(r, http.MethodDelete, "/tasks/999", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
	}
}
