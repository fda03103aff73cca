package postgres

import (
	"context"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

// CreateInquiry inserts a contact request against an existing listing. The
// existence check runs first so a dead listing id surfaces as ErrNotFound;
// the foreign key backstops the race between check and insert.
func (s *Store) CreateInquiry(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM listings WHERE id = $1)`, inquiry.ListingID).Scan(&exists)
	if err != nil {
		return models.Inquiry{}, mapError(err)
	}
	if !exists {
		return models.Inquiry{}, storage.ErrNotFound
	}

	const query = `
		INSERT INTO inquiries (listing_id, tenant_id, contact_phone, contact_email, preferred_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, listing_id, tenant_id, contact_phone, contact_email, preferred_time, status, created_at;`
	row := s.pool.QueryRow(ctx, query,
		inquiry.ListingID, inquiry.TenantID, inquiry.ContactPhone,
		inquiry.ContactEmail, inquiry.PreferredTime)

	var created models.Inquiry
	if err := row.Scan(&created.ID, &created.ListingID, &created.TenantID,
		&created.ContactPhone, &created.ContactEmail, &created.PreferredTime,
		&created.Status, &created.CreatedAt); err != nil {
		return models.Inquiry{}, mapError(err)
	}
	return created, nil
}

// GetInquiryListingOwner resolves the owner of the listing an inquiry
// references, or ErrNotFound when the inquiry does not exist.
func (s *Store) GetInquiryListingOwner(ctx context.Context, inquiryID int64) (int64, error) {
	const query = `
		SELECT l.user_id
		FROM inquiries i
		JOIN listings l ON i.listing_id = l.id
		WHERE i.id = $1;`
	var ownerID int64
	if err := s.pool.QueryRow(ctx, query, inquiryID).Scan(&ownerID); err != nil {
		return 0, mapError(err)
	}
	return ownerID, nil
}

// UpdateInquiryStatus sets an inquiry's status, scoped to inquiries whose
// listing is owned by posterID.
func (s *Store) UpdateInquiryStatus(ctx context.Context, inquiryID, posterID int64, status string) error {
	const query = `
		UPDATE inquiries i
		SET status = $1
		FROM listings l
		WHERE i.listing_id = l.id AND i.id = $2 AND l.user_id = $3;`
	tag, err := s.pool.Exec(ctx, query, status, inquiryID, posterID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListInquiriesForPoster returns the dashboard feed: every inquiry against
// one of the poster's listings, enriched with listing and tenant display
// fields, newest first.
func (s *Store) ListInquiriesForPoster(ctx context.Context, posterID int64) ([]models.PosterInquiry, error) {
	const query = `
		SELECT i.id, i.contact_phone, i.contact_email, i.preferred_time, i.status, i.created_at,
			l.title, l.location, u.username
		FROM inquiries i
		JOIN listings l ON i.listing_id = l.id
		JOIN users u ON i.tenant_id = u.id
		WHERE l.user_id = $1
		ORDER BY i.created_at DESC;`
	rows, err := s.pool.Query(ctx, query, posterID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var feed []models.PosterInquiry
	for rows.Next() {
		var row models.PosterInquiry
		if err := rows.Scan(&row.InquiryID, &row.ContactPhone, &row.ContactEmail,
			&row.PreferredTime, &row.Status, &row.CreatedAt,
			&row.ListingTitle, &row.ListingLocation, &row.TenantUsername); err != nil {
			return nil, err
		}
		feed = append(feed, row)
	}
	return feed, rows.Err()
}
