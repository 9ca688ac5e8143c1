package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BaseHandler serves the pages that belong to no feature area.
type BaseHandler struct {
	views *ViewBuilder
}

func NewBaseHandler(views *ViewBuilder) *BaseHandler {
	return &BaseHandler{views: views}
}

// Home serves GET /.
func (h *BaseHandler) Home(c echo.Context) error {
	view, err := h.views.Build(c, "Home")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "index", view)
}

// TriggerError serves GET /error/trigger, a deliberate failure used to
// exercise the error page end to end.
func (h *BaseHandler) TriggerError(c echo.Context) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "intentional server error")
}
