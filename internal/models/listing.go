package models

import "time"

// Known listing types. The first entry is the default applied on creation.
const (
	TypeApartment  = "Apartment"
	TypeStudio     = "Studio"
	TypeHouse      = "House"
	TypeSingleRoom = "Single Room"
)

// DefaultImageURL is applied when a listing is created without an image.
const DefaultImageURL = "https://picsum.photos/id/1/400/300"

// Listing is a rental listing owned by a poster. UserID never changes after
// creation; updates are scoped to the owning user.
type Listing struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidListingType reports whether t is a known listing type.
func ValidListingType(t string) bool {
	switch t {
	case TypeApartment, TypeStudio, TypeHouse, TypeSingleRoom:
		return true
	}
	return false
}

// ListingFilter holds the optional predicates for public listing retrieval.
// Nil price bounds mean "not filtered".
type ListingFilter struct {
	Location string
	MinPrice *float64
	MaxPrice *float64
}
