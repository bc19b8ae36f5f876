package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, _ *domain.User) (*ports.InsertOutcome, error) {
	return &ports.InsertOutcome{}, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) { return nil, nil }

func (r *stubUserRepo) ListByRole(_ context.Context, _ string) ([]*domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, _, _ string) (*ports.UpdateOutcome, error) {
	return &ports.UpdateOutcome{}, nil
}

func newRoleContext(e *echo.Echo, email string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if email != "" {
		c.Set("email", email)
	}
	return c, rec
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"admin@example.com": {Email: "admin@example.com", Role: domain.RoleAdmin},
	}}
	c, rec := newRoleContext(e, "admin@example.com")

	called := false
	mw := RequireRole(repo, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_ForbidsWrongRole(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{
		"bob@example.com": {Email: "bob@example.com", Role: domain.RoleInstructor},
	}}
	c, rec := newRoleContext(e, "bob@example.com")

	mw := RequireRole(repo, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_ForbidsUnknownUser(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	c, rec := newRoleContext(e, "ghost@example.com")

	mw := RequireRole(repo, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_MissingClaims(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	c, rec := newRoleContext(e, "")

	mw := RequireRole(repo, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// Revoking a role takes effect on the very next request because the gate
// reads the stored role instead of trusting the token.
func TestRequireRole_RevocationIsImmediate(t *testing.T) {
	e := echo.New()
	user := &domain.User{Email: "carol@example.com", Role: domain.RoleAdmin}
	repo := &stubUserRepo{users: map[string]*domain.User{user.Email: user}}

	mw := RequireRole(repo, domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	c, rec := newRoleContext(e, user.Email)
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before revocation, got %d", rec.Code)
	}

	user.Role = ""

	c, rec = newRoleContext(e, user.Email)
	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after revocation, got %d", rec.Code)
	}
}
