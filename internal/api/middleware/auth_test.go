package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/token"
)

type stubFlashStore struct {
	pushed []string
}

func (s *stubFlashStore) Push(_ context.Context, _, message string) error {
	s.pushed = append(s.pushed, message)
	return nil
}

func (s *stubFlashStore) PopAll(_ context.Context, _ string) ([]string, error) {
	out := s.pushed
	s.pushed = nil
	return out, nil
}

func issueFor(t *testing.T, role domain.Role, ttl time.Duration) string {
	t.Helper()
	signed, err := token.Issue(&domain.Account{
		ID: "acc_1", FirstName: "Jo", LastName: "Doe", Email: "jo@x.com", Role: role,
	}, "secret", ttl)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func newContext(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoadIdentity_ValidToken(t *testing.T) {
	c, rec := newContext(t, issueFor(t, domain.RoleClient, time.Hour))

	mw := LoadIdentity("secret", false, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		claims, ok := Identity(c)
		if !ok {
			t.Fatalf("identity not attached")
		}
		if claims.AccountID() != "acc_1" || claims.Role != domain.RoleClient {
			t.Fatalf("unexpected claims: %+v", claims)
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

func TestLoadIdentity_NoCookieContinuesAnonymously(t *testing.T) {
	c, rec := newContext(t, "")

	called := false
	mw := LoadIdentity("secret", false, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if _, ok := Identity(c); ok {
			t.Fatalf("unexpected identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must reach the handler")
	}
}

func TestLoadIdentity_ExpiredTokenClearsCookie(t *testing.T) {
	c, rec := newContext(t, issueFor(t, domain.RoleClient, -time.Minute))

	mw := LoadIdentity("secret", false, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		if _, ok := Identity(c); ok {
			t.Fatalf("expired token must not yield an identity")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("stale cookie not cleared")
	}
}

func TestLoadIdentity_TamperedTokenContinuesAnonymously(t *testing.T) {
	c, _ := newContext(t, "tampered.garbage.token")

	called := false
	mw := LoadIdentity("secret", false, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if _, ok := Identity(c); ok {
			t.Fatalf("unexpected identity from garbage token")
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAccount_RedirectsWithoutIdentity(t *testing.T) {
	c, rec := newContext(t, "")
	flash := &stubFlashStore{}

	mw := RequireAccount(flash, false)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/login" {
		t.Fatalf("expected redirect to /account/login, got %q", loc)
	}
	if len(flash.pushed) != 1 {
		t.Fatalf("expected one notice, got %v", flash.pushed)
	}
}

func TestRequireAccount_PassesWithIdentity(t *testing.T) {
	c, rec := newContext(t, "")
	claims := &token.Claims{Role: domain.RoleClient}
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), claims)))

	called := false
	mw := RequireAccount(&stubFlashStore{}, false)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("authenticated request must reach the handler")
	}
}

func TestRequireEmployee_ClientRedirectedLikeMissingToken(t *testing.T) {
	missing, recMissing := newContext(t, "")
	client, recClient := newContext(t, "")
	claims := &token.Claims{Role: domain.RoleClient}
	client.SetRequest(client.Request().WithContext(WithIdentity(client.Request().Context(), claims)))

	mw := RequireEmployee(&stubFlashStore{}, false)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})

	if err := handler(missing); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if err := handler(client); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if recMissing.Code != recClient.Code {
		t.Fatalf("client role must redirect exactly like a missing token: %d vs %d", recMissing.Code, recClient.Code)
	}
	if recMissing.Header().Get(echo.HeaderLocation) != recClient.Header().Get(echo.HeaderLocation) {
		t.Fatalf("redirect targets differ")
	}
}

func TestRequireEmployee_AllowsEmployeeAndAdmin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleAdmin} {
		c, rec := newContext(t, "")
		claims := &token.Claims{Role: role}
		c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), claims)))

		called := false
		mw := RequireEmployee(&stubFlashStore{}, false)
		handler := mw(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("role %s must pass the gate", role)
		}
	}
}
