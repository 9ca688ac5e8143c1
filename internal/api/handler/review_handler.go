package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/validation"
)

// ReviewHandler accepts review submissions from the vehicle detail page.
type ReviewHandler struct {
	reviews   ports.ReviewService
	validator *validation.FormValidator
	flash     ports.FlashStore
	secure    bool
	logger    zerolog.Logger
}

func NewReviewHandler(reviews ports.ReviewService, validator *validation.FormValidator, flash ports.FlashStore, secure bool, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: validator,
		flash:     flash,
		secure:    secure,
		logger:    logger,
	}
}

// Add handles POST /reviews/add. The author is always the logged-in account;
// both outcomes land back on the detail page, with the verdict carried as a
// flash notice.
func (h *ReviewHandler) Add(c echo.Context) error {
	var form reviewForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	claims, ok := middleware.Identity(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/account/login")
	}

	detailPath := "/inv/detail/" + form.VehicleID
	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("add_review").Inc()
		middleware.PushFlash(c, h.flash, h.secure, "Please write something before submitting a review.")
		if form.VehicleID == "" {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return c.Redirect(http.StatusSeeOther, detailPath)
	}

	if err := h.reviews.Add(c.Request().Context(), form.VehicleID, claims.AccountID(), form.Text); err != nil {
		return err
	}

	middleware.PushFlash(c, h.flash, h.secure, "Thanks for your review!")
	return c.Redirect(http.StatusSeeOther, detailPath)
}
