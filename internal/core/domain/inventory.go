package domain

import "errors"

// Classification groups vehicles on the lot (SUV, Sedan, Truck, ...). The
// navigation bar is built from the full classification list.
type Classification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vehicle is a single inventory item belonging to exactly one classification.
type Vehicle struct {
	ID               string  `json:"id"`
	ClassificationID string  `json:"classification_id"`
	Make             string  `json:"make"`
	Model            string  `json:"model"`
	Description      string  `json:"description"`
	Image            string  `json:"image"`
	Thumbnail        string  `json:"thumbnail"`
	Price            float64 `json:"price"`
	Year             int     `json:"year"`
	Miles            int     `json:"miles"`
	Color            string  `json:"color"`
}

var (
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrClassificationExists   = errors.New("classification already exists")
)
