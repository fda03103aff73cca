package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/EzraKL/RentalFinder/internal/auth"
	"github.com/EzraKL/RentalFinder/internal/http/respond"
	"github.com/EzraKL/RentalFinder/internal/middleware"
	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/models/dto"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// ListingHandler owns the /listings resource. Reads are public; every
// mutation resolves a principal and, for update/delete, passes the
// ownership gate.
type ListingHandler struct {
	store  storage.ListingStore
	tokens *auth.TokenManager
}

// NewListingHandler constructs the handler.
func NewListingHandler(store storage.ListingStore, tokens *auth.TokenManager) *ListingHandler {
	return &ListingHandler{store: store, tokens: tokens}
}

// Register attaches the listings route to the mux.
func (h *ListingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/listings", h.handle)
}

func (h *ListingHandler) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.authed(h.create)(w, r)
	case http.MethodPut:
		h.authed(h.update)(w, r)
	case http.MethodDelete:
		h.authed(h.delete)(w, r)
	default:
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// authed guards a mutating method with bearer-token principal resolution.
func (h *ListingHandler) authed(next http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireAuth(h.tokens, next).ServeHTTP
}

func (h *ListingHandler) list(w http.ResponseWriter, r *http.Request) {
	filter := models.ListingFilter{
		Location: strings.TrimSpace(r.URL.Query().Get("location")),
	}
	// Numeric params that fail to parse are dropped rather than rejected so
	// a malformed query string never breaks the public browse page.
	// ParseFloat accepts NaN and infinities, which are not usable bounds.
	if v := r.URL.Query().Get("min_price"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil && isFinite(min) {
			filter.MinPrice = &min
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil && isFinite(max) {
			filter.MaxPrice = &max
		}
	}

	listings, err := h.store.ListListings(r.Context(), filter)
	if err != nil {
		log.Printf("list listings: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not fetch listings")
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	respond.Data(w, http.StatusOK, listings)
}

func (h *ListingHandler) create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ListingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	listing, errMsg := listingFromPayload(req)
	if errMsg != "" {
		respond.Error(w, http.StatusBadRequest, errMsg)
		return
	}
	listing.UserID = principal.UserID

	if _, err := h.store.CreateListing(r.Context(), listing); err != nil {
		log.Printf("create listing: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not create listing")
		return
	}
	respond.Message(w, http.StatusCreated, "listing added successfully")
}

func (h *ListingHandler) update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.ListingPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.ID <= 0 {
		respond.Error(w, http.StatusBadRequest, "listing id is required")
		return
	}
	listing, errMsg := listingFromPayload(req)
	if errMsg != "" {
		respond.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	ownerID, err := h.store.GetListingOwner(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Printf("update listing: resolve owner: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not update listing")
		return
	}
	if !auth.OwnsResource(principal.UserID, ownerID) {
		respond.Error(w, http.StatusForbidden, "you do not own this listing")
		return
	}

	listing.ID = req.ID
	listing.UserID = principal.UserID
	if err := h.store.UpdateListing(r.Context(), listing); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted between the owner check and the write.
			respond.Error(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Printf("update listing: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not update listing")
		return
	}
	respond.Message(w, http.StatusOK, "listing updated successfully")
}

func (h *ListingHandler) delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.DeleteListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.ID <= 0 {
		respond.Error(w, http.StatusBadRequest, "listing id is required")
		return
	}

	ownerID, err := h.store.GetListingOwner(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Printf("delete listing: resolve owner: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not delete listing")
		return
	}
	if !auth.OwnsResource(principal.UserID, ownerID) {
		respond.Error(w, http.StatusForbidden, "you do not own this listing")
		return
	}

	if err := h.store.DeleteListing(r.Context(), req.ID, principal.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "listing not found")
			return
		}
		log.Printf("delete listing: %v", err)
		respond.Error(w, http.StatusInternalServerError, "could not delete listing")
		return
	}
	respond.Message(w, http.StatusOK, "listing deleted successfully")
}

// listingFromPayload validates the editable fields shared by create and
// update. Returns a non-empty message on validation failure.
func listingFromPayload(req dto.ListingPayload) (models.Listing, string) {
	title := strings.TrimSpace(req.Title)
	location := strings.TrimSpace(req.Location)
	if title == "" || location == "" || len(req.Price) == 0 {
		return models.Listing{}, "title, location, and price are required"
	}
	price, ok := parsePrice(req.Price)
	if !ok {
		return models.Listing{}, "price must be a positive number"
	}

	listingType := strings.TrimSpace(req.Type)
	if listingType == "" {
		listingType = models.TypeApartment
	}
	if !models.ValidListingType(listingType) {
		return models.Listing{}, "unknown listing type"
	}
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	return models.Listing{
		Title:       title,
		Location:    location,
		Price:       price,
		Type:        listingType,
		Description: strings.TrimSpace(req.Description),
		ImageURL:    imageURL,
	}, ""
}

// parsePrice accepts a JSON number or numeric string and requires a
// finite positive value. NaN in particular would slip past a plain
// `<= 0` guard, since NaN compares false against everything.
func parsePrice(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if strings.HasPrefix(s, `"`) {
		var quoted string
		if err := json.Unmarshal(raw, &quoted); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(quoted)
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(price) || price <= 0 {
		return 0, false
	}
	return price, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
