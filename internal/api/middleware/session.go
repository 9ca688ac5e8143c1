package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/ports"
)

const (
	// SessionCookieName carries the signed identity token.
	SessionCookieName = "jwt"
	// FlashCookieName identifies the browser's one-shot notice bucket.
	FlashCookieName = "flash_id"
)

// SetSessionCookie places the identity token in an HTTP-only cookie whose
// max-age matches the token TTL.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the identity cookie (logout, or a stale token
// found during verification).
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FlashSessionID returns the browser's flash bucket id, minting and setting
// the cookie when absent.
func FlashSessionID(c echo.Context, secure bool) string {
	if cookie, err := c.Cookie(FlashCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := newFlashID()
	c.SetCookie(&http.Cookie{
		Name:     FlashCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// PushFlash records a one-shot notice for the current browser session. A
// failing flash store must never break the user flow, so errors are dropped
// here; the store logs them itself.
func PushFlash(c echo.Context, store ports.FlashStore, secure bool, message string) {
	sid := FlashSessionID(c, secure)
	_ = store.Push(c.Request().Context(), sid, message)
}

// PopFlashes drains the pending notices for the current browser session.
func PopFlashes(c echo.Context, store ports.FlashStore, secure bool) []string {
	sid := FlashSessionID(c, secure)
	msgs, err := store.PopAll(c.Request().Context(), sid)
	if err != nil {
		return nil
	}
	return msgs
}

func newFlashID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for session purposes.
		panic(err)
	}
	return hex.EncodeToString(b)
}
