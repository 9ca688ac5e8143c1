package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/validation"
)

// AccountHandler serves the login, registration, and account maintenance
// pages.
type AccountHandler struct {
	accounts  ports.AccountService
	views     *ViewBuilder
	validator *validation.FormValidator
	flash     ports.FlashStore
	secure    bool
	logger    zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, views *ViewBuilder, validator *validation.FormValidator, flash ports.FlashStore, secure bool, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		views:     views,
		validator: validator,
		flash:     flash,
		secure:    secure,
		logger:    logger,
	}
}

// LoginView serves GET /account/login.
func (h *AccountHandler) LoginView(c echo.Context) error {
	view, err := h.views.Build(c, "Login")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "account/login", view)
}

// Login handles POST /account/login. On success it places the session
// cookie and redirects; on bad credentials it re-renders the form with the
// email echoed and no cookie set.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("login").Inc()
		return h.renderLogin(c, errs)
	}

	signed, account, err := h.accounts.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			var errs validation.Errors
			errs.Add("account_email", "Please check your credentials and try again.")
			return h.renderLogin(c, errs)
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	middleware.SetSessionCookie(c, signed, h.accounts.TokenTTL(), h.secure)
	middleware.PushFlash(c, h.flash, h.secure, fmt.Sprintf("Welcome back, %s.", account.FirstName))
	return c.Redirect(http.StatusSeeOther, "/account/")
}

func (h *AccountHandler) renderLogin(c echo.Context, errs validation.Errors) error {
	view, err := h.views.Build(c, "Login")
	if err != nil {
		return err
	}
	view.Errors = errs
	view.Fields = render.EchoFields(submittedFields(c))
	return c.Render(http.StatusUnprocessableEntity, "account/login", view)
}

// RegisterView serves GET /account/register.
func (h *AccountHandler) RegisterView(c echo.Context) error {
	view, err := h.views.Build(c, "Register")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "account/register", view)
}

// Register handles POST /account/register.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("register").Inc()
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return h.renderRegister(c, errs, http.StatusUnprocessableEntity)
	}

	account, errs, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		// System failure, not a user mistake: generic notice, password
		// dropped, no details leaked.
		h.logger.Error().Err(err).Msg("registration failed")
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		middleware.PushFlash(c, h.flash, h.secure, "Sorry, there was an error processing the registration.")
		return h.renderRegister(c, nil, http.StatusInternalServerError)
	}
	if errs.HasErrors() {
		metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		return h.renderRegister(c, errs, http.StatusUnprocessableEntity)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	middleware.PushFlash(c, h.flash, h.secure,
		fmt.Sprintf("Congratulations, %s, you're registered. Please log in.", account.FirstName))
	return c.Redirect(http.StatusSeeOther, "/account/login")
}

func (h *AccountHandler) renderRegister(c echo.Context, errs validation.Errors, status int) error {
	view, err := h.views.Build(c, "Register")
	if err != nil {
		return err
	}
	view.Errors = errs
	view.Fields = render.EchoFields(submittedFields(c))
	return c.Render(status, "account/register", view)
}

// Management serves GET /account/ — the logged-in landing page.
func (h *AccountHandler) Management(c echo.Context) error {
	view, err := h.views.Build(c, "Account Management")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "account/management", view)
}

// UpdateView serves GET /account/update/:accountID with the profile form
// prefilled. Accounts can only edit themselves.
func (h *AccountHandler) UpdateView(c echo.Context) error {
	claims, _ := middleware.Identity(c)
	accountID := c.Param("accountID")
	if claims == nil || claims.AccountID() != accountID {
		return echo.NewHTTPError(http.StatusForbidden, "you may only edit your own account")
	}

	account, err := h.accounts.AccountByID(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	view, err := h.views.Build(c, "Edit Account")
	if err != nil {
		return err
	}
	view.Fields = map[string]string{
		"account_id":        account.ID,
		"account_firstname": account.FirstName,
		"account_lastname":  account.LastName,
		"account_email":     account.Email,
	}
	return c.Render(http.StatusOK, "account/update", view)
}

// Update handles POST /account/update. On success the session token is
// re-issued so the cookie claims match the stored account again.
func (h *AccountHandler) Update(c echo.Context) error {
	var form updateAccountForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	claims, _ := middleware.Identity(c)
	if claims == nil || claims.AccountID() != form.AccountID {
		return echo.NewHTTPError(http.StatusForbidden, "you may only edit your own account")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("update_account").Inc()
		return h.renderUpdate(c, errs, http.StatusUnprocessableEntity)
	}

	account, errs, err := h.accounts.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		AccountID: form.AccountID,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		return err
	}
	if errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("update_account").Inc()
		return h.renderUpdate(c, errs, http.StatusUnprocessableEntity)
	}

	signed, err := h.accounts.IssueSession(account)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, signed, h.accounts.TokenTTL(), h.secure)
	middleware.PushFlash(c, h.flash, h.secure, "Account information updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

func (h *AccountHandler) renderUpdate(c echo.Context, errs validation.Errors, status int) error {
	view, err := h.views.Build(c, "Edit Account")
	if err != nil {
		return err
	}
	view.Errors = errs
	view.Fields = render.EchoFields(submittedFields(c))
	return c.Render(status, "account/update", view)
}

// UpdatePassword handles POST /account/password.
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	var form updatePasswordForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	claims, _ := middleware.Identity(c)
	if claims == nil || claims.AccountID() != form.AccountID {
		return echo.NewHTTPError(http.StatusForbidden, "you may only edit your own account")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("update_password").Inc()
		return h.renderUpdate(c, errs, http.StatusUnprocessableEntity)
	}

	if err := h.accounts.UpdatePassword(c.Request().Context(), form.AccountID, form.Password); err != nil {
		h.logger.Error().Err(err).Msg("password update failed")
		middleware.PushFlash(c, h.flash, h.secure, "Sorry, the password could not be updated.")
		return h.renderUpdate(c, nil, http.StatusInternalServerError)
	}

	middleware.PushFlash(c, h.flash, h.secure, "Password updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// Logout serves GET /account/logout: clear the session cookie and land on
// the home page.
func (h *AccountHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.secure)
	middleware.PushFlash(c, h.flash, h.secure, "You have logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}
