package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/EzraKL/RentalFinder/internal/http/respond"
	"github.com/EzraKL/RentalFinder/internal/middleware"
	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/models/dto"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// InquiryHandler owns inquiry submission. The route is registered behind
// RequireAuth, so a principal is always present.
type InquiryHandler struct {
	store storage.InquiryStore
}

// NewInquiryHandler constructs the handler.
func NewInquiryHandler(store storage.InquiryStore) *InquiryHandler {
	return &InquiryHandler{store: store}
}

// Handle serves POST /inquiries.
func (h *InquiryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	phone := strings.TrimSpace(req.ContactPhone)
	email := strings.TrimSpace(req.ContactEmail)
	if req.ListingID <= 0 || phone == "" || email == "" {
		respond.Error(w, http.StatusBadRequest, "listing id, phone, and email are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid email format")
		return
	}
	preferredTime := strings.TrimSpace(req.PreferredTime)
	if preferredTime == "" {
		preferredTime = models.DefaultPreferredTime
	}

	inquiry := models.Inquiry{
		ListingID:     req.ListingID,
		TenantID:      principal.UserID,
		ContactPhone:  phone,
		ContactEmail:  email,
		PreferredTime: preferredTime,
	}
	if _, err := h.store.CreateInquiry(r.Context(), inquiry); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Printf("create inquiry: %v", err)
		respond.Error(w, http.StatusInternalServerError, "contact request failed")
		return
	}
	respond.Message(w, http.StatusCreated, "contact request sent, the poster will reach out to you directly")
}
