package storage

import (
	"context"
	"errors"

	"github.com/EzraKL/RentalFinder/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures identity persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// ListingStore captures listing persistence. Update and Delete are scoped by
// owner; callers resolve existence and ownership first via GetListingOwner.
type ListingStore interface {
	CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error)
	ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error)
	GetListingOwner(ctx context.Context, listingID int64) (int64, error)
	UpdateListing(ctx context.Context, listing models.Listing) error
	DeleteListing(ctx context.Context, listingID, ownerID int64) error
}

// InquiryStore captures inquiry persistence, including the transitive owner
// lookup used to gate status updates.
type InquiryStore interface {
	CreateInquiry(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error)
	GetInquiryListingOwner(ctx context.Context, inquiryID int64) (int64, error)
	UpdateInquiryStatus(ctx context.Context, inquiryID, posterID int64, status string) error
	ListInquiriesForPoster(ctx context.Context, posterID int64) ([]models.PosterInquiry, error)
}

// Store is the full persistence surface wired into the server.
type Store interface {
	UserStore
	ListingStore
	InquiryStore
}
