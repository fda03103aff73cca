package postgres

import (
	"context"
	"fmt"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/EzraKL/RentalFinder/internal/storage"
)

const listingColumns = `id, user_id, title, location, price, type, description, image_url, is_available, created_at`

// CreateListing inserts a listing owned by listing.UserID.
func (s *Store) CreateListing(ctx context.Context, listing models.Listing) (models.Listing, error) {
	query := fmt.Sprintf(`
		INSERT INTO listings (user_id, title, location, price, type, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s;`, listingColumns)
	row := s.pool.QueryRow(ctx, query,
		listing.UserID, listing.Title, listing.Location, listing.Price,
		listing.Type, listing.Description, listing.ImageURL)

	var created models.Listing
	if err := row.Scan(&created.ID, &created.UserID, &created.Title, &created.Location,
		&created.Price, &created.Type, &created.Description, &created.ImageURL,
		&created.IsAvailable, &created.CreatedAt); err != nil {
		return models.Listing{}, mapError(err)
	}
	return created, nil
}

// ListListings returns all available listings matching the filter, newest
// first. Predicates are appended conditionally and joined with AND.
func (s *Store) ListListings(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE is_available = TRUE`, listingColumns)
	args := []any{}
	idx := 1

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", idx)
		args = append(args, "%"+filter.Location+"%")
		idx++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", idx)
		args = append(args, *filter.MinPrice)
		idx++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", idx)
		args = append(args, *filter.MaxPrice)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.Location, &l.Price,
			&l.Type, &l.Description, &l.ImageURL, &l.IsAvailable, &l.CreatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetListingOwner returns the owner id of a listing, or ErrNotFound.
func (s *Store) GetListingOwner(ctx context.Context, listingID int64) (int64, error) {
	var ownerID int64
	err := s.pool.QueryRow(ctx, `SELECT user_id FROM listings WHERE id = $1`, listingID).Scan(&ownerID)
	if err != nil {
		return 0, mapError(err)
	}
	return ownerID, nil
}

// UpdateListing replaces all editable fields of a listing. The write is
// scoped to the owning user; user_id itself is never updated.
func (s *Store) UpdateListing(ctx context.Context, listing models.Listing) error {
	const query = `
		UPDATE listings
		SET title = $1, location = $2, price = $3, type = $4, description = $5, image_url = $6
		WHERE id = $7 AND user_id = $8;`
	tag, err := s.pool.Exec(ctx, query,
		listing.Title, listing.Location, listing.Price, listing.Type,
		listing.Description, listing.ImageURL, listing.ID, listing.UserID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteListing removes a listing, scoped to the owning user.
func (s *Store) DeleteListing(ctx context.Context, listingID, ownerID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1 AND user_id = $2`, listingID, ownerID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
