package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/taskhub-api/internal/core/domain"
	"github.com/taskhub/taskhub-api/internal/core/ports"
	"github.com/taskhub/taskhub-api/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory stores backing the full HTTP stack
// ---------------------------------------------------------------------------

type memUserRepo struct {
	byEmail map[string]*domain.User
	seq     int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	created := *user
	created.ID = "user_" + strconv.Itoa(r.seq)
	r.byEmail[created.Email] = &created
	out := created
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memTaskRepo struct {
	byID map[string]*domain.Task
	seq  int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{byID: make(map[string]*domain.Task)}
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.seq++
	clone := *task
	clone.ID = "task_" + strconv.Itoa(r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memTaskRepo) ListByUser(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range r.byID {
		if task.UserID == userID {
			clone := *task
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, id, userID string, patch ports.TaskPatch) (*domain.Task, error) {
	task, ok := r.byID[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	clone := *task
	return &clone, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id, userID string) error {
	task, ok := r.byID[id]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func do(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == domain.SessionCookieName {
			return ck
		}
	}
	t.Fatalf("session cookie not present in response")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return out
}

// TestRouter_EndToEnd drives the whole HTTP stack — router, middleware,
// handlers, services — against in-memory stores. The router is built once:
// the prometheus middleware registers collectors globally.
func TestRouter_EndToEnd(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(newMemUserRepo(), tokens)
	taskService := service.NewTaskService(newMemTaskRepo(), zerolog.Nop())

	e := NewRouter(Dependencies{
		Auth:   authService,
		Tokens: tokens,
		Tasks:  taskService,
		Log:    zerolog.Nop(),
	})

	var session *http.Cookie
	var taskID string

	t.Run("register", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"a@x.com","password":"pw1"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode(t, rec)
		ud := resp["userData"].(map[string]any)
		if ud["email"] != "a@x.com" {
			t.Fatalf("unexpected userData: %+v", ud)
		}
		// The issued token must decode back to the submitted email.
		payload, err := tokens.Verify(resp["token"].(string))
		if err != nil || payload.Email != "a@x.com" {
			t.Fatalf("register token invalid: %v %+v", err, payload)
		}
	})

	t.Run("register duplicate email", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/register",
			`{"username":"alice2","email":"a@x.com","password":"pw2"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "User already exists") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("login wrong password", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/login",
			`{"email":"a@x.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("login unknown email", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/login",
			`{"email":"ghost@x.com","password":"pw1"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("login", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/login",
			`{"email":"a@x.com","password":"pw1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		session = sessionCookieFrom(t, rec)
		if !session.HttpOnly || session.SameSite != http.SameSiteLaxMode {
			t.Fatalf("unexpected cookie attributes: %+v", session)
		}
	})

	t.Run("tasks require auth", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/api/tasks", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("no cookie: expected 401, got %d", rec.Code)
		}
		tampered := &http.Cookie{Name: domain.SessionCookieName, Value: session.Value + "x"}
		if rec := do(e, http.MethodGet, "/api/tasks", "", tampered); rec.Code != http.StatusUnauthorized {
			t.Fatalf("tampered cookie: expected 401, got %d", rec.Code)
		}
	})

	t.Run("list starts empty", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/tasks", "", session)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Fatalf("expected empty array, got %s", got)
		}
	})

	t.Run("create task", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/tasks",
			`{"title":"t","description":"d"}`, session)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := decode(t, rec)["data"].(map[string]any)
		if data["status"] != "active" {
			t.Fatalf("expected active status, got %v", data["status"])
		}
		taskID = data["id"].(string)
	})

	t.Run("list has one task", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/tasks", "", session)
		var tasks []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(tasks) != 1 || tasks[0]["title"] != "t" {
			t.Fatalf("unexpected tasks: %+v", tasks)
		}
	})

	t.Run("update task", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/tasks/"+taskID,
			`{"status":"completed"}`, session)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		data := decode(t, rec)["data"].(map[string]any)
		if data["status"] != "completed" || data["title"] != "t" {
			t.Fatalf("unexpected data: %+v", data)
		}
	})

	t.Run("update with empty patch", func(t *testing.T) {
		rec := do(e, http.MethodPut, "/api/tasks/"+taskID, `{}`, session)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("tasks are invisible to other users", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/register",
			`{"username":"bob","email":"b@x.com","password":"pw2"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("bob register failed: %d", rec.Code)
		}
		bob := sessionCookieFrom(t, rec)

		list := do(e, http.MethodGet, "/api/tasks", "", bob)
		if got := strings.TrimSpace(list.Body.String()); got != "[]" {
			t.Fatalf("bob must see no tasks, got %s", got)
		}

		steal := do(e, http.MethodPut, "/api/tasks/"+taskID, `{"title":"mine"}`, bob)
		if steal.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign task, got %d", steal.Code)
		}
	})

	t.Run("verify states", func(t *testing.T) {
		rec := do(e, http.MethodGet, "/api/auth/verify", "")
		resp := decode(t, rec)
		if rec.Code != http.StatusOK || resp["authenticated"] != false || resp["tokenPresent"] != false {
			t.Fatalf("no cookie: unexpected %d %+v", rec.Code, resp)
		}

		garbage := &http.Cookie{Name: domain.SessionCookieName, Value: "garbage"}
		rec = do(e, http.MethodGet, "/api/auth/verify", "", garbage)
		resp = decode(t, rec)
		if rec.Code != http.StatusOK || resp["authenticated"] != false || resp["tokenPresent"] != true {
			t.Fatalf("bad cookie: unexpected %d %+v", rec.Code, resp)
		}

		rec = do(e, http.MethodGet, "/api/auth/verify", "", session)
		resp = decode(t, rec)
		if resp["authenticated"] != true || resp["tokenPresent"] != true {
			t.Fatalf("valid cookie: unexpected %+v", resp)
		}
		ud := resp["userData"].(map[string]any)
		if ud["email"] != "a@x.com" {
			t.Fatalf("unexpected userData: %+v", ud)
		}
	})

	t.Run("logout does not invalidate a copied token", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/auth/logout", "", session)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		cleared := sessionCookieFrom(t, rec)
		if cleared.Value != "" || cleared.MaxAge >= 0 {
			t.Fatalf("expected cleared cookie, got %+v", cleared)
		}

		// A client that kept the old cookie value is still admitted: sessions
		// are stateless and logout is purely a client-side instruction.
		rec = do(e, http.MethodGet, "/api/tasks", "", session)
		if rec.Code != http.StatusOK {
			t.Fatalf("old token after logout: expected 200, got %d", rec.Code)
		}
	})

	t.Run("delete task", func(t *testing.T) {
		rec := do(e, http.MethodDelete, "/api/tasks/"+taskID, "", session)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec := do(e, http.MethodDelete, "/api/tasks/"+taskID, "", session); rec.Code != http.StatusNotFound {
			t.Fatalf("second delete: expected 404, got %d", rec.Code)
		}
		if got := strings.TrimSpace(do(e, http.MethodGet, "/api/tasks", "", session).Body.String()); got != "[]" {
			t.Fatalf("expected empty list after delete, got %s", got)
		}
	})

	t.Run("liveness probe", func(t *testing.T) {
		if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
