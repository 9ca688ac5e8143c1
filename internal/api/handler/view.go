package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/ports"
)

// ViewBuilder assembles the per-request view model every page shares: title,
// navigation, pending notices, and the request identity.
type ViewBuilder struct {
	inventory ports.InventoryService
	flash     ports.FlashStore
	secure    bool
}

func NewViewBuilder(inventory ports.InventoryService, flash ports.FlashStore, secure bool) *ViewBuilder {
	return &ViewBuilder{inventory: inventory, flash: flash, secure: secure}
}

// Build returns the base view data for a page. Building the nav requires the
// classification list; that failure propagates so the central error handler
// can take over.
func (b *ViewBuilder) Build(c echo.Context, title string) (render.ViewData, error) {
	classifications, err := b.inventory.Classifications(c.Request().Context())
	if err != nil {
		return render.ViewData{}, err
	}

	data := render.ViewData{
		Title:    title,
		Nav:      render.Nav(classifications),
		Messages: middleware.PopFlashes(c, b.flash, b.secure),
		Fields:   map[string]string{},
		Data:     map[string]any{},
	}
	if claims, ok := middleware.Identity(c); ok {
		data.Identity = claims
	}
	return data, nil
}

// submittedFields snapshots the posted form for echo-back. Secret fields are
// filtered later by render.EchoFields.
func submittedFields(c echo.Context) map[string]string {
	params, err := c.FormParams()
	if err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(params))
	for name, values := range params {
		if len(values) > 0 {
			out[name] = values[0]
		}
	}
	return out
}
