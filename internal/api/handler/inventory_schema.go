package handler

import "github.com/csemotors/dealership/internal/core/ports"

// classificationForm is the POST body of the add-classification page.
type classificationForm struct {
	Name string `form:"classification_name" validate:"required,alpha"`
}

// vehicleForm is the POST body of the add-inventory and edit pages. The
// vehicle id is only present on edits.
type vehicleForm struct {
	VehicleID        string  `form:"vehicle_id"`
	ClassificationID string  `form:"classification_id" validate:"required"`
	Make             string  `form:"inv_make" validate:"required,min=3"`
	Model            string  `form:"inv_model" validate:"required,min=3"`
	Description      string  `form:"inv_description" validate:"required"`
	Image            string  `form:"inv_image" validate:"required"`
	Thumbnail        string  `form:"inv_thumbnail" validate:"required"`
	Price            float64 `form:"inv_price" validate:"gte=0"`
	Year             int     `form:"inv_year" validate:"gte=1900,lte=2099"`
	Miles            int     `form:"inv_miles" validate:"gte=0"`
	Color            string  `form:"inv_color" validate:"required"`
}

func (f vehicleForm) toInput() ports.VehicleInput {
	return ports.VehicleInput{
		ID:               f.VehicleID,
		ClassificationID: f.ClassificationID,
		Make:             f.Make,
		Model:            f.Model,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            f.Price,
		Year:             f.Year,
		Miles:            f.Miles,
		Color:            f.Color,
	}
}

// reviewForm is the POST body of the review box on the vehicle detail page.
type reviewForm struct {
	VehicleID string `form:"vehicle_id" validate:"required"`
	Text      string `form:"review_text" validate:"required"`
}
