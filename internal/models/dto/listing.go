package dto

import "encoding/json"

// ListingPayload is the body for creating or replacing a listing. Price is
// kept as raw JSON so a malformed value can be reported as a validation
// failure instead of an opaque decode error.
type ListingPayload struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	Price       json.RawMessage `json:"price"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

// DeleteListingRequest identifies the listing to remove.
type DeleteListingRequest struct {
	ID int64 `json:"id"`
}
