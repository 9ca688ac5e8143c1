// Package middleware implements the request gate chain: identity loading
// from the session cookie, the login requirement, and the back-office role
// requirement. Each gate ends a request in exactly one of two ways: pass
// control to the next step, or redirect to the login page with a notice.
package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/token"
)

const loginPath = "/account/login"

// LoadIdentity decodes the session cookie, when present and valid, into a
// request-scoped identity. It never blocks a request: missing, tampered, and
// expired tokens all continue anonymously, with the stale cookie cleared.
// Expired and tampered tokens are told apart only in the server log.
func LoadIdentity(secret string, secure bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := token.Verify(cookie.Value, secret)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					log.Info().Str("path", c.Path()).Msg("session token expired")
				} else {
					log.Warn().Str("path", c.Path()).Msg("session token rejected")
				}
				ClearSessionCookie(c, secure)
				return next(c)
			}

			ctx := WithIdentity(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAccount turns away requests that carry no valid identity: one-shot
// notice, redirect to the login page, handler never invoked.
func RequireAccount(flash ports.FlashStore, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := Identity(c); !ok {
				metrics.AuthRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				PushFlash(c, flash, secure, "Please log in.")
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

// RequireEmployee gates the inventory back office. A valid identity with an
// insufficient role is turned away exactly like a missing one; the notice
// stays generic so the response does not reveal the role requirement.
func RequireEmployee(flash ports.FlashStore, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Identity(c)
			if !ok {
				metrics.AuthRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				PushFlash(c, flash, secure, "Please log in.")
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			if !claims.Role.CanManageInventory() {
				metrics.AuthRedirectsTotal.WithLabelValues("forbidden").Inc()
				PushFlash(c, flash, secure, "Please log in with an authorized account.")
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
