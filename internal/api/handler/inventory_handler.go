package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/validation"
)

// InventoryHandler serves the public catalog pages and the employee-only
// inventory management pages.
type InventoryHandler struct {
	inventory ports.InventoryService
	reviews   ports.ReviewService
	views     *ViewBuilder
	validator *validation.FormValidator
	flash     ports.FlashStore
	secure    bool
	logger    zerolog.Logger
}

func NewInventoryHandler(inventory ports.InventoryService, reviews ports.ReviewService, views *ViewBuilder, validator *validation.FormValidator, flash ports.FlashStore, secure bool, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		reviews:   reviews,
		views:     views,
		validator: validator,
		flash:     flash,
		secure:    secure,
		logger:    logger,
	}
}

// ByClassification serves GET /inv/type/:classificationID, the vehicle grid
// for one classification. An empty classification is a normal page, not an
// error.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	classificationID := c.Param("classificationID")

	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	name := ""
	for _, cl := range classifications {
		if cl.ID == classificationID {
			name = cl.Name
			break
		}
	}
	if name == "" {
		return domain.ErrClassificationNotFound
	}

	vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), classificationID)
	if err != nil {
		return err
	}

	view, err := h.views.Build(c, name+" vehicles")
	if err != nil {
		return err
	}
	view.Data["vehicles"] = vehicles
	return c.Render(http.StatusOK, "inventory/classification", view)
}

// Detail serves GET /inv/detail/:vehicleID with the full vehicle record and
// its reviews.
func (h *InventoryHandler) Detail(c echo.Context) error {
	vehicleID := c.Param("vehicleID")

	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), vehicleID)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.ListByVehicle(c.Request().Context(), vehicleID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model)
	view, err := h.views.Build(c, title)
	if err != nil {
		return err
	}
	view.Data["vehicle"] = vehicle
	view.Data["reviews"] = reviews
	view.Fields["vehicle_id"] = vehicle.ID
	return c.Render(http.StatusOK, "inventory/detail", view)
}

// Management serves GET /inv/, the employee landing page with the
// classification picker.
func (h *InventoryHandler) Management(c echo.Context) error {
	view, err := h.views.Build(c, "Inventory Management")
	if err != nil {
		return err
	}
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	view.Data["classifications"] = classifications
	return c.Render(http.StatusOK, "inventory/management", view)
}

// AddClassificationView serves GET /inv/add-classification.
func (h *InventoryHandler) AddClassificationView(c echo.Context) error {
	view, err := h.views.Build(c, "Add Classification")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "inventory/add-classification", view)
}

// AddClassification handles POST /inv/add-classification.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	var form classificationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("add_classification").Inc()
		return h.renderAddClassification(c, errs, http.StatusUnprocessableEntity)
	}

	created, errs, err := h.inventory.AddClassification(c.Request().Context(), form.Name)
	if err != nil {
		h.logger.Error().Err(err).Msg("add classification failed")
		middleware.PushFlash(c, h.flash, h.secure, "Sorry, the classification could not be added.")
		return h.renderAddClassification(c, nil, http.StatusInternalServerError)
	}
	if errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("add_classification").Inc()
		return h.renderAddClassification(c, errs, http.StatusUnprocessableEntity)
	}

	middleware.PushFlash(c, h.flash, h.secure,
		fmt.Sprintf("The %s classification was successfully added.", created.Name))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) renderAddClassification(c echo.Context, errs validation.Errors, status int) error {
	view, err := h.views.Build(c, "Add Classification")
	if err != nil {
		return err
	}
	view.Errors = errs
	view.Fields = render.EchoFields(submittedFields(c))
	return c.Render(status, "inventory/add-classification", view)
}

// AddInventoryView serves GET /inv/add-inventory.
func (h *InventoryHandler) AddInventoryView(c echo.Context) error {
	view, err := h.views.Build(c, "Add Vehicle")
	if err != nil {
		return err
	}
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	view.Data["classifications"] = classifications
	return c.Render(http.StatusOK, "inventory/add-inventory", view)
}

// AddInventory handles POST /inv/add-inventory. A rejected submission
// re-renders with every field echoed, including the classification pick.
func (h *InventoryHandler) AddInventory(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}

	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("add_inventory").Inc()
		return h.renderVehicleForm(c, "Add Vehicle", "inventory/add-inventory", errs, http.StatusUnprocessableEntity)
	}

	created, err := h.inventory.AddVehicle(c.Request().Context(), form.toInput())
	if err != nil {
		h.logger.Error().Err(err).Msg("add vehicle failed")
		middleware.PushFlash(c, h.flash, h.secure, "Sorry, the vehicle could not be added.")
		return h.renderVehicleForm(c, "Add Vehicle", "inventory/add-inventory", nil, http.StatusInternalServerError)
	}

	middleware.PushFlash(c, h.flash, h.secure,
		fmt.Sprintf("The %s %s was successfully added.", created.Make, created.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// EditView serves GET /inv/edit/:vehicleID with the form prefilled from the
// stored record.
func (h *InventoryHandler) EditView(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("vehicleID"))
	if err != nil {
		return err
	}

	view, err := h.views.Build(c, fmt.Sprintf("Edit %s %s", vehicle.Make, vehicle.Model))
	if err != nil {
		return err
	}
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	view.Data["classifications"] = classifications
	view.Fields = vehicleFields(vehicle)
	return c.Render(http.StatusOK, "inventory/edit-inventory", view)
}

// Update handles POST /inv/update.
func (h *InventoryHandler) Update(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	if form.VehicleID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing vehicle id")
	}

	title := fmt.Sprintf("Edit %s %s", form.Make, form.Model)
	if errs := h.validator.Validate(form); errs.HasErrors() {
		metrics.FormRejectionsTotal.WithLabelValues("edit_inventory").Inc()
		return h.renderVehicleForm(c, title, "inventory/edit-inventory", errs, http.StatusUnprocessableEntity)
	}

	updated, err := h.inventory.UpdateVehicle(c.Request().Context(), form.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return err
		}
		h.logger.Error().Err(err).Msg("update vehicle failed")
		middleware.PushFlash(c, h.flash, h.secure, "Sorry, the vehicle could not be updated.")
		return h.renderVehicleForm(c, title, "inventory/edit-inventory", nil, http.StatusInternalServerError)
	}

	middleware.PushFlash(c, h.flash, h.secure,
		fmt.Sprintf("The %s %s was successfully updated.", updated.Make, updated.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// DeleteView serves GET /inv/delete/:vehicleID, a read-only confirmation
// page.
func (h *InventoryHandler) DeleteView(c echo.Context) error {
	vehicle, err := h.inventory.VehicleByID(c.Request().Context(), c.Param("vehicleID"))
	if err != nil {
		return err
	}

	view, err := h.views.Build(c, fmt.Sprintf("Delete %s %s", vehicle.Make, vehicle.Model))
	if err != nil {
		return err
	}
	view.Fields = vehicleFields(vehicle)
	return c.Render(http.StatusOK, "inventory/delete-confirm", view)
}

// Delete handles POST /inv/delete.
func (h *InventoryHandler) Delete(c echo.Context) error {
	vehicleID := c.FormValue("vehicle_id")
	if vehicleID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing vehicle id")
	}

	if err := h.inventory.DeleteVehicle(c.Request().Context(), vehicleID); err != nil {
		return err
	}

	middleware.PushFlash(c, h.flash, h.secure, "The vehicle was successfully deleted.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// InventoryJSON serves GET /inv/inventory/:classificationID, the JSON feed
// backing the management page's classification picker.
func (h *InventoryHandler) InventoryJSON(c echo.Context) error {
	vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), c.Param("classificationID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *InventoryHandler) renderVehicleForm(c echo.Context, title, page string, errs validation.Errors, status int) error {
	view, err := h.views.Build(c, title)
	if err != nil {
		return err
	}
	classifications, err := h.inventory.Classifications(c.Request().Context())
	if err != nil {
		return err
	}
	view.Data["classifications"] = classifications
	view.Errors = errs
	view.Fields = render.EchoFields(submittedFields(c))
	return c.Render(status, page, view)
}

// vehicleFields flattens a stored vehicle into the form field map used for
// prefilled edit and delete pages.
func vehicleFields(v *domain.Vehicle) map[string]string {
	return map[string]string{
		"vehicle_id":        v.ID,
		"classification_id": v.ClassificationID,
		"inv_make":          v.Make,
		"inv_model":         v.Model,
		"inv_description":   v.Description,
		"inv_image":         v.Image,
		"inv_thumbnail":     v.Thumbnail,
		"inv_price":         strconv.FormatFloat(v.Price, 'f', -1, 64),
		"inv_year":          strconv.Itoa(v.Year),
		"inv_miles":         strconv.Itoa(v.Miles),
		"inv_color":         v.Color,
	}
}
