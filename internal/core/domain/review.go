package domain

import "time"

// Review is a customer comment attached to a vehicle detail page.
type Review struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	AccountID string    `json:"account_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithAuthor pairs a review with the reviewer's first name for display.
type ReviewWithAuthor struct {
	Review
	AuthorFirstName string `json:"author_first_name"`
}
