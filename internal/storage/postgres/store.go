package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/EzraKL/RentalFinder/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the full storage surface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users, listings, and
// inquiries.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'tenant',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS listings (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			location TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL CHECK (price > 0),
			type TEXT NOT NULL DEFAULT 'Apartment',
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS inquiries (
			id BIGSERIAL PRIMARY KEY,
			listing_id BIGINT NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			tenant_id BIGINT NOT NULL REFERENCES users(id),
			contact_phone TEXT NOT NULL,
			contact_email TEXT NOT NULL,
			preferred_time TEXT NOT NULL DEFAULT 'Anytime',
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS listings_created_at_idx ON listings (created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS inquiries_listing_id_idx ON inquiries (listing_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// mapError translates driver errors into storage sentinels. Unique
// violations become ErrAlreadyExists; foreign-key violations become
// ErrNotFound since they only arise from dangling references.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return storage.ErrAlreadyExists
		case "23503":
			return storage.ErrNotFound
		}
	}
	return err
}
