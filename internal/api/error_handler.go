package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/core/domain"
)

// NewHTTPErrorHandler returns the central error handler: every error that
// escapes a handler becomes a themed HTML page with the right status code.
// Internal details are logged, never rendered.
func NewHTTPErrorHandler(views *handler.ViewBuilder, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Oh no! There was a crash. Maybe try a different route?"

		var httpErr *echo.HTTPError
		switch {
		case errors.Is(err, domain.ErrVehicleNotFound),
			errors.Is(err, domain.ErrClassificationNotFound),
			errors.Is(err, domain.ErrAccountNotFound):
			status = http.StatusNotFound
		case errors.As(err, &httpErr):
			status = httpErr.Code
		}
		if status == http.StatusNotFound {
			message = "Sorry, we appear to have lost that page."
		}

		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Msg("request failed")
		} else {
			log.Warn().Err(err).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Msg("request rejected")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}

		view, buildErr := views.Build(c, fmt.Sprintf("%d %s", status, http.StatusText(status)))
		if buildErr != nil {
			// The error page itself needs the nav; if that fails too, fall
			// back to plain text rather than looping.
			log.Error().Err(buildErr).Msg("error page build failed")
			_ = c.String(status, http.StatusText(status))
			return
		}
		view.Data["message"] = message

		if renderErr := c.Render(status, "errors/error", view); renderErr != nil {
			log.Error().Err(renderErr).Msg("error page render failed")
			_ = c.String(status, http.StatusText(status))
		}
	}
}
