package models

import "time"

// Inquiry statuses. Transitions are deliberately unconstrained: any known
// status may move to any other.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusResolved  = "resolved"
)

// DefaultPreferredTime is applied when a tenant omits a viewing preference.
const DefaultPreferredTime = "Anytime"

// Inquiry is a tenant's contact request against a listing. Status is mutated
// only by the poster who owns the referenced listing.
type Inquiry struct {
	ID            int64     `json:"id"`
	ListingID     int64     `json:"listing_id"`
	TenantID      int64     `json:"tenant_id"`
	ContactPhone  string    `json:"contact_phone"`
	ContactEmail  string    `json:"contact_email"`
	PreferredTime string    `json:"preferred_time"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidInquiryStatus reports whether s is a known inquiry status.
func ValidInquiryStatus(s string) bool {
	switch s {
	case StatusNew, StatusContacted, StatusResolved:
		return true
	}
	return false
}

// PosterInquiry is a dashboard row: an inquiry enriched with the listing's
// display fields and the submitting tenant's username.
type PosterInquiry struct {
	InquiryID       int64     `json:"inquiry_id"`
	ContactPhone    string    `json:"contact_phone"`
	ContactEmail    string    `json:"contact_email"`
	PreferredTime   string    `json:"preferred_time"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	ListingTitle    string    `json:"listing_title"`
	ListingLocation string    `json:"listing_location"`
	TenantUsername  string    `json:"tenant_username"`
}
