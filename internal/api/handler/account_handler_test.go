package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/validation"
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

type stubInventoryService struct {
	classifications []domain.Classification
	vehicles        []domain.Vehicle
	vehicle         *domain.Vehicle
}

func (s *stubInventoryService) Classifications(context.Context) ([]domain.Classification, error) {
	return s.classifications, nil
}

func (s *stubInventoryService) AddClassification(_ context.Context, name string) (*domain.Classification, validation.Errors, error) {
	return &domain.Classification{ID: "c1", Name: name}, nil, nil
}

func (s *stubInventoryService) VehiclesByClassification(context.Context, string) ([]domain.Vehicle, error) {
	return s.vehicles, nil
}

func (s *stubInventoryService) VehicleByID(context.Context, string) (*domain.Vehicle, error) {
	if s.vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	return s.vehicle, nil
}

func (s *stubInventoryService) AddVehicle(_ context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: "v1", Make: in.Make, Model: in.Model}, nil
}

func (s *stubInventoryService) UpdateVehicle(_ context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: in.ID, Make: in.Make, Model: in.Model}, nil
}

func (s *stubInventoryService) DeleteVehicle(context.Context, string) error { return nil }

type stubAccountService struct {
	loginToken   string
	loginAccount *domain.Account
	loginErr     error
	registered   []ports.RegisterInput
}

func (s *stubAccountService) Register(_ context.Context, in ports.RegisterInput) (*domain.Account, validation.Errors, error) {
	s.registered = append(s.registered, in)
	return &domain.Account{ID: "acc_1", FirstName: in.FirstName, Role: domain.RoleClient}, nil, nil
}

func (s *stubAccountService) Login(context.Context, string, string) (string, *domain.Account, error) {
	return s.loginToken, s.loginAccount, s.loginErr
}

func (s *stubAccountService) UpdateProfile(_ context.Context, in ports.UpdateProfileInput) (*domain.Account, validation.Errors, error) {
	return &domain.Account{ID: in.AccountID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil, nil
}

func (s *stubAccountService) UpdatePassword(context.Context, string, string) error { return nil }

func (s *stubAccountService) AccountByID(_ context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (s *stubAccountService) IssueSession(*domain.Account) (string, error) { return "reissued", nil }

func (s *stubAccountService) TokenTTL() time.Duration { return time.Hour }

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := render.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	return e
}

func postForm(t *testing.T, e *echo.Echo, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAccountHandler(accounts ports.AccountService, flash *stubFlashStore) *AccountHandler {
	inventory := &stubInventoryService{classifications: []domain.Classification{{ID: "c1", Name: "SUV"}}}
	views := NewViewBuilder(inventory, flash, false)
	return NewAccountHandler(accounts, views, validation.NewFormValidator(), flash, false, zerolog.Nop())
}

func TestRegister_WeakPasswordEchoesEverythingButThePassword(t *testing.T) {
	e := newTestEcho(t)
	accounts := &stubAccountService{}
	h := newAccountHandler(accounts, &stubFlashStore{})

	const weak = "short1!"
	c, rec := postForm(t, e, "/account/register", url.Values{
		"account_firstname": {"Jo"},
		"account_lastname":  {"Doe"},
		"account_email":     {"jo@example.com"},
		"account_password":  {weak},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(accounts.registered) != 0 {
		t.Fatalf("rejected submission must not reach the service")
	}

	body := rec.Body.String()
	for _, want := range []string{"Jo", "Doe", "jo@example.com"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing echoed field %q", want)
		}
	}
	if strings.Contains(body, weak) {
		t.Fatalf("password must never be echoed back")
	}
}

func TestRegister_SuccessFlashesAndRedirectsToLogin(t *testing.T) {
	e := newTestEcho(t)
	flash := &stubFlashStore{}
	h := newAccountHandler(&stubAccountService{}, flash)

	c, rec := postForm(t, e, "/account/register", url.Values{
		"account_firstname": {"Jo"},
		"account_lastname":  {"Doe"},
		"account_email":     {"jo@example.com"},
		"account_password":  {"Str0ng&Secure!"},
	})

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/login" {
		t.Fatalf("expected redirect to /account/login, got %q", loc)
	}
	if len(flash.pushed) != 1 || !strings.Contains(flash.pushed[0], "Jo") {
		t.Fatalf("expected a personalised welcome notice, got %v", flash.pushed)
	}
}

func TestLogin_SuccessSetsSessionCookieAndRedirects(t *testing.T) {
	e := newTestEcho(t)
	accounts := &stubAccountService{
		loginToken:   "signed-token",
		loginAccount: &domain.Account{ID: "acc_1", FirstName: "Jo", Role: domain.RoleClient},
	}
	h := newAccountHandler(accounts, &stubFlashStore{})

	c, rec := postForm(t, e, "/account/login", url.Values{
		"account_email":    {"jo@example.com"},
		"account_password": {"whatever"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/account/" {
		t.Fatalf("expected redirect to /account/, got %q", loc)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" {
			session = ck
		}
	}
	if session == nil {
		t.Fatalf("session cookie not set")
	}
	if session.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", session.Value)
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if session.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("cookie max-age %d does not match the token ttl", session.MaxAge)
	}
}

func TestLogin_BadCredentialsRerendersWithoutCookie(t *testing.T) {
	e := newTestEcho(t)
	accounts := &stubAccountService{loginErr: domain.ErrInvalidCredentials}
	h := newAccountHandler(accounts, &stubFlashStore{})

	c, rec := postForm(t, e, "/account/login", url.Values{
		"account_email":    {"jo@example.com"},
		"account_password": {"wrong-password"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" {
			t.Fatalf("failed login must not set a session cookie")
		}
	}

	body := rec.Body.String()
	if !strings.Contains(body, "jo@example.com") {
		t.Fatalf("email must be echoed back")
	}
	if strings.Contains(body, "wrong-password") {
		t.Fatalf("password must never be echoed back")
	}
}

func TestLogin_MissingFieldsRejectedBeforeTheService(t *testing.T) {
	e := newTestEcho(t)
	accounts := &stubAccountService{loginToken: "must-not-be-used"}
	h := newAccountHandler(accounts, &stubFlashStore{})

	c, rec := postForm(t, e, "/account/login", url.Values{
		"account_email": {"not-an-email"},
	})

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "jwt" {
			t.Fatalf("invalid submission must not set a session cookie")
		}
	}
}
