// Package memstore provides an in-memory implementation of the storage
// interfaces with the same observable semantics as the Postgres store. It
// backs handler tests, which cannot run against pgx without a live server.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps all records in memory behind a single mutex.
type Store struct {
	mu        sync.Mutex
	users     map[int64]models.User
	listings  map[int64]models.Listing
	inquiries map[int64]models.Inquiry
	nextID    int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:     make(map[int64]models.User),
		listings:  make(map[int64]models.Listing),
		inquiries: make(map[int64]models.Inquiry),
	}
}

func (s *Store) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

// CreateUser inserts a user, enforcing username and email uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = s.nextSeq()
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// CreateListing inserts a listing owned by listing.UserID.
func (s *Store) CreateListing(_ context.Context, listing models.Listing) (models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing.ID = s.nextSeq()
	listing.IsAvailable = true
	listing.CreatedAt = time.Now()
	s.listings[listing.ID] = listing
	return listing, nil
}

// ListListings returns available listings matching the filter, newest first.
func (s *Store) ListListings(_ context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Listing
	for _, l := range s.listings {
		if !l.IsAvailable {
			continue
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(filter.Location)) {
			continue
		}
		if filter.MinPrice != nil && l.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && l.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetListingOwner returns the owner id of a listing, or ErrNotFound.
func (s *Store) GetListingOwner(_ context.Context, listingID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	listing, ok := s.listings[listingID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return listing.UserID, nil
}

// UpdateListing replaces all editable fields, scoped to the owning user.
func (s *Store) UpdateListing(_ context.Context, listing models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.listings[listing.ID]
	if !ok || existing.UserID != listing.UserID {
		return storage.ErrNotFound
	}
	existing.Title = listing.Title
	existing.Location = listing.Location
	existing.Price = listing.Price
	existing.Type = listing.Type
	existing.Description = listing.Description
	existing.ImageURL = listing.ImageURL
	s.listings[listing.ID] = existing
	return nil
}

// DeleteListing removes a listing, scoped to the owning user.
func (s *Store) DeleteListing(_ context.Context, listingID, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.listings[listingID]
	if !ok || existing.UserID != ownerID {
		return storage.ErrNotFound
	}
	delete(s.listings, listingID)
	for id, inquiry := range s.inquiries {
		if inquiry.ListingID == listingID {
			delete(s.inquiries, id)
		}
	}
	return nil
}

// CreateInquiry inserts a contact request against an existing listing.
func (s *Store) CreateInquiry(_ context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[inquiry.ListingID]; !ok {
		return models.Inquiry{}, storage.ErrNotFound
	}
	inquiry.ID = s.nextSeq()
	if inquiry.PreferredTime == "" {
		inquiry.PreferredTime = models.DefaultPreferredTime
	}
	inquiry.Status = models.StatusNew
	inquiry.CreatedAt = time.Now()
	s.inquiries[inquiry.ID] = inquiry
	return inquiry, nil
}

// GetInquiryListingOwner resolves the owner of the listing an inquiry references.
func (s *Store) GetInquiryListingOwner(_ context.Context, inquiryID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inquiry, ok := s.inquiries[inquiryID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	listing, ok := s.listings[inquiry.ListingID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return listing.UserID, nil
}

// UpdateInquiryStatus sets an inquiry's status, scoped to the listing owner.
func (s *Store) UpdateInquiryStatus(_ context.Context, inquiryID, posterID int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inquiry, ok := s.inquiries[inquiryID]
	if !ok {
		return storage.ErrNotFound
	}
	listing, ok := s.listings[inquiry.ListingID]
	if !ok || listing.UserID != posterID {
		return storage.ErrNotFound
	}
	inquiry.Status = status
	s.inquiries[inquiryID] = inquiry
	return nil
}

// ListInquiriesForPoster returns the poster's enriched inquiry feed, newest first.
func (s *Store) ListInquiriesForPoster(_ context.Context, posterID int64) ([]models.PosterInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var feed []models.PosterInquiry
	for _, inquiry := range s.inquiries {
		listing, ok := s.listings[inquiry.ListingID]
		if !ok || listing.UserID != posterID {
			continue
		}
		tenant := s.users[inquiry.TenantID]
		feed = append(feed, models.PosterInquiry{
			InquiryID:       inquiry.ID,
			ContactPhone:    inquiry.ContactPhone,
			ContactEmail:    inquiry.ContactEmail,
			PreferredTime:   inquiry.PreferredTime,
			Status:          inquiry.Status,
			CreatedAt:       inquiry.CreatedAt,
			ListingTitle:    listing.Title,
			ListingLocation: listing.Location,
			TenantUsername:  tenant.Username,
		})
	}
	sort.Slice(feed, func(i, j int) bool {
		if feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].InquiryID > feed[j].InquiryID
		}
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	return feed, nil
}
