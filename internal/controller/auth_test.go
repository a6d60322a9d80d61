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
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"taskdeck/internal/models"
	"taskdeck/internal/service"
)

type stubAuthStore struct {
	users map[string]*models.User
}

func (s *stubAuthStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *stubAuthStore) CreateUser(_ context.Context, data models.SignupInput) (*models.User, error) {
	if _, ok := s.users[data.Email]; ok {
		return nil, &pq.Error{Code: "23505"}
	}
	u := &models.User{ID: int64(len(s.users) + 1), Username: data.Username, Email: data.Email, Password: data.Password}
	s.users[data.Email] = u
	return u, nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *stubAuthStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := &stubAuthStore{users: map[string]*models.User{}}
	h := NewAuth(service.NewAuth(store), "test-secret", time.Hour)
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	return r, store
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, store *stubAuthStore, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	store.users[email] = &models.User{ID: 1, Username: "ada", Email: email, Password: string(hash)}
}

func TestLoginStatusMapping(t *testing.T) {
	r, store := newAuthRouter(t)
	seedUser(t, store, "ada@x.com", "correct horse")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"unknown user", `{"email":"missing@x.com","password":"anything"}`, http.StatusNotFound},
		{"wrong password", `{"email":"ada@x.com","password":"nope-nope"}`, http.StatusUnauthorized},
		{"success", `{"email":"ada@x.com","password":"correct horse"}`, http.StatusOK},
		{"malformed email", `{"email":"not-an-email","password":"x"}`, http.StatusBadRequest},
		{"missing password", `{"email":"ada@x.com"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/login", tc.body)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestLoginResponseOmitsPassword(t *testing.T) {
	r, store := newAuthRouter(t)
	seedUser(t, store, "ada@x.com", "correct horse")

	w := postJSON(r, "/login", `{"email":"ada@x.com","password":"correct horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Error("login response leaked a password field")
	}
	var resp struct {
		Data struct {
			ID    int64  `json:"id"`
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.ID != 1 || resp.Data.Token == "" {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestSignupStatusMapping(t *testing.T) {
	r, store := newAuthRouter(t)
	seedUser(t, store, "taken@x.com", "whatever1")

	cases := []struct {
		name string
		body string
		want int
	}{
		{"created", `{"username":"bob","email":"bob@x.com","password":"secret123","confirm_password":"secret123"}`, http.StatusCreated},
		{"duplicate email", `{"username":"eve","email":"taken@x.com","password":"secret123","confirm_password":"secret123"}`, http.StatusConflict},
		{"password mismatch", `{"username":"bob","email":"b2@x.com","password":"secret123","confirm_password":"different"}`, http.StatusBadRequest},
		{"short password", `{"username":"bob","email":"b3@x.com","password":"abc","confirm_password":"abc"}`, http.StatusBadRequest},
		{"short username", `{"username":"ab","email":"b4@x.com","password":"secret123","confirm_password":"secret123"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/signup", tc.body)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestSignupNeverStoresPlaintext(t *testing.T) {
	r, store := newAuthRouter(t)
	w := postJSON(r, "/signup", `{"username":"bob","email":"bob@x.com","password":"secret123","confirm_password":"secret123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if store.users["bob@x.com"].Password == "secret123" {
		t.Error("plaintext password reached the store")
	}
}
