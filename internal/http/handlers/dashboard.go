package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/http/respond"
	"github.com/EzraKL/RentalFinder/internal/middleware"
	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/models/dto"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// DashboardHandler owns the poster inquiry feed and status transitions.
// The route is registered behind RequireAuth.
type DashboardHandler struct {
	store storage.InquiryStore
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(store storage.InquiryStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Handle serves GET and POST /dashboard/inquiries.
func (h *DashboardHandler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.feed(w, r, principal)
	case http.MethodPost:
		h.updateStatus(w, r, principal)
	default:
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *DashboardHandler) feed(w http.ResponseWriter, r *http.Request, principal auth.Principal) {
	feed, err := h.store.ListInquiriesForPoster(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("dashboard feed: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to load inquiries")
		return
	}
	if feed == nil {
		feed = []models.PosterInquiry{}
	}
	respond.Data(w, http.StatusOK, feed)
}

func (h *DashboardHandler) updateStatus(w http.ResponseWriter, r *http.Request, principal auth.Principal) {
	var req dto.UpdateInquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.InquiryID <= 0 {
		respond.Error(w, http.StatusBadRequest, "inquiry id is required")
		return
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.StatusContacted
	}
	if !models.ValidInquiryStatus(status) {
		respond.Error(w, http.StatusBadRequest, "unknown inquiry status")
		return
	}

	// Transitive ownership: the gate compares against the owner of the
	// listing the inquiry references, not the inquiry's tenant.
	ownerID, err := h.store.GetInquiryListingOwner(r.Context(), req.InquiryID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "inquiry not found")
			return
		}
		log.Printf("update inquiry status: resolve owner: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to update inquiry status")
		return
	}
	if !auth.OwnsResource(principal.UserID, ownerID) {
		respond.Error(w, http.StatusForbidden, "you do not own the listing for this inquiry")
		return
	}

	if err := h.store.UpdateInquiryStatus(r.Context(), req.InquiryID, principal.UserID, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "inquiry not found")
			return
		}
		log.Printf("update inquiry status: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to update inquiry status")
		return
	}
	respond.Message(w, http.StatusOK, "inquiry status updated successfully")
}
