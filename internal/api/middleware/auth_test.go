package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-gateway/internal/core/domain"
	"github.com/orderdesk/order-gateway/internal/core/service"
)

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) FindByUsername(username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUsers) SetDisabled(username string, disabled bool) error {
	user, ok := f.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Disabled = disabled
	return nil
}

func guardFixture() (mw echo.MiddlewareFunc, tokens *service.TokenService, users *fakeUsers) {
	tokens = service.NewTokenService("secret")
	users = &fakeUsers{users: map[string]*domain.User{
		"alice": {ID: "u1", Username: "alice"},
		"bob":   {ID: "u2", Username: "bob", Disabled: true},
	}}
	return Auth(tokens, users), tokens, users
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuth_ValidToken(t *testing.T) {
	mw, tokens, _ := guardFixture()
	token, err := tokens.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		user, err := CurrentUser(c)
		if err != nil {
			t.Fatalf("CurrentUser: %v", err)
		}
		if user.Username != "alice" || user.ID != "u1" {
			t.Fatalf("unexpected user in context: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	mw, _, _ := guardFixture()
	rec, called := invoke(t, mw, "")
	if called {
		t.Fatalf("next called without credentials")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("missing WWW-Authenticate challenge")
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	mw, _, _ := guardFixture()
	rec, called := invoke(t, mw, "Basic abc")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw, _, _ := guardFixture()
	rec, called := invoke(t, mw, "Bearer not-a-token")
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	mw, _, _ := guardFixture()

	// Issue from a clock far in the past so the token arrives expired.
	past := service.NewTokenService("secret").WithClock(func() time.Time {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	token, err := past.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	rec, called := invoke(t, mw, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_UnknownUser(t *testing.T) {
	mw, tokens, _ := guardFixture()
	token, err := tokens.Issue("ghost", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, called := invoke(t, mw, "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_DisabledUser(t *testing.T) {
	mw, tokens, _ := guardFixture()
	token, err := tokens.Issue("bob", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, called := invoke(t, mw, "Bearer "+token)
	if called {
		t.Fatalf("next called for disabled user")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
