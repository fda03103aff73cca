package dto

type CreateInquiryRequest struct {
	ListingID     int64  `json:"listing_id"`
	ContactPhone  string `json:"contact_phone"`
	ContactEmail  string `json:"contact_email"`
	PreferredTime string `json:"preferred_time"`
}

type UpdateInquiryStatusRequest struct {
	InquiryID int64  `json:"inquiry_id"`
	Status    string `json:"status"`
}
