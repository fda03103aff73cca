package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/storage"
	"github.com/stretchr/testify/require"
)

func seedPoster(t *testing.T, s *Store) models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), models.User{
		Username: "poster", Email: "poster@example.com", Role: models.RolePoster,
	})
	require.NoError(t, err)
	return user
}

func TestCreateUserConflicts(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, models.User{Username: "alice", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Username: "alice", Email: "other@x.com"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateUser(ctx, models.User{Username: "other", Email: "alice@x.com"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.FindByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListListingsExcludesUnavailable(t *testing.T) {
	s := New()
	ctx := context.Background()
	poster := seedPoster(t, s)

	visible, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Visible", Location: "Downtown", Price: 1000})
	require.NoError(t, err)
	hidden, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Hidden", Location: "Downtown", Price: 1000})
	require.NoError(t, err)

	// Flip availability directly; no endpoint toggles this flag.
	l := s.listings[hidden.ID]
	l.IsAvailable = false
	s.listings[hidden.ID] = l

	filters := []models.ListingFilter{
		{},
		{Location: "down"},
		{MinPrice: floatPtr(500)},
		{MaxPrice: floatPtr(2000)},
		{Location: "Downtown", MinPrice: floatPtr(500), MaxPrice: floatPtr(2000)},
	}
	for _, filter := range filters {
		listings, err := s.ListListings(ctx, filter)
		require.NoError(t, err)
		require.Len(t, listings, 1)
		require.Equal(t, visible.ID, listings[0].ID)
		require.True(t, listings[0].IsAvailable)
	}
}

func TestListListingsOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	poster := seedPoster(t, s)

	first, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "First", Location: "A", Price: 100})
	require.NoError(t, err)
	second, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Second", Location: "B", Price: 200})
	require.NoError(t, err)

	// Force distinct timestamps so creation order is observable.
	older := s.listings[first.ID]
	older.CreatedAt = older.CreatedAt.Add(-time.Minute)
	s.listings[first.ID] = older

	listings, err := s.ListListings(ctx, models.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	require.Equal(t, second.ID, listings[0].ID)
	require.Equal(t, first.ID, listings[1].ID)
}

func TestUpdateListingScopedToOwner(t *testing.T) {
	s := New()
	ctx := context.Background()
	poster := seedPoster(t, s)

	created, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Loft", Location: "Downtown", Price: 1500})
	require.NoError(t, err)

	// Wrong owner leaves the row untouched.
	err = s.UpdateListing(ctx, models.Listing{ID: created.ID, UserID: poster.ID + 1, Title: "Stolen"})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Equal(t, "Loft", s.listings[created.ID].Title)

	err = s.UpdateListing(ctx, models.Listing{ID: created.ID, UserID: poster.ID, Title: "Updated", Location: "Downtown", Price: 1600})
	require.NoError(t, err)
	require.Equal(t, "Updated", s.listings[created.ID].Title)
	// Owner never changes.
	require.Equal(t, poster.ID, s.listings[created.ID].UserID)
}

func TestDeleteListingRemovesInquiries(t *testing.T) {
	s := New()
	ctx := context.Background()
	poster := seedPoster(t, s)
	tenant, err := s.CreateUser(ctx, models.User{Username: "tenant", Email: "tenant@x.com", Role: models.RoleTenant})
	require.NoError(t, err)

	listing, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Loft", Location: "Downtown", Price: 1500})
	require.NoError(t, err)
	_, err = s.CreateInquiry(ctx, models.Inquiry{ListingID: listing.ID, TenantID: tenant.ID, ContactPhone: "555", ContactEmail: "t@x.com"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteListing(ctx, listing.ID, poster.ID))

	feed, err := s.ListInquiriesForPoster(ctx, poster.ID)
	require.NoError(t, err)
	require.Empty(t, feed)
}

func TestCreateInquiryRequiresListing(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateInquiry(ctx, models.Inquiry{ListingID: 999999, TenantID: 1, ContactPhone: "555", ContactEmail: "t@x.com"})
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Empty(t, s.inquiries)
}

func TestUpdateInquiryStatusScopedToListingOwner(t *testing.T) {
	s := New()
	ctx := context.Background()
	poster := seedPoster(t, s)
	tenant, err := s.CreateUser(ctx, models.User{Username: "tenant", Email: "tenant@x.com", Role: models.RoleTenant})
	require.NoError(t, err)

	listing, err := s.CreateListing(ctx, models.Listing{UserID: poster.ID, Title: "Loft", Location: "Downtown", Price: 1500})
	require.NoError(t, err)
	inquiry, err := s.CreateInquiry(ctx, models.Inquiry{ListingID: listing.ID, TenantID: tenant.ID, ContactPhone: "555", ContactEmail: "t@x.com"})
	require.NoError(t, err)
	require.Equal(t, models.StatusNew, inquiry.Status)

	// The tenant who filed the inquiry is not the gate's owner.
	err = s.UpdateInquiryStatus(ctx, inquiry.ID, tenant.ID, models.StatusContacted)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.UpdateInquiryStatus(ctx, inquiry.ID, poster.ID, models.StatusContacted))
	require.Equal(t, models.StatusContacted, s.inquiries[inquiry.ID].Status)

	// Idempotent in end state.
	require.NoError(t, s.UpdateInquiryStatus(ctx, inquiry.ID, poster.ID, models.StatusContacted))
	require.Equal(t, models.StatusContacted, s.inquiries[inquiry.ID].Status)
}

func floatPtr(v float64) *float64 { return &v }
