package postgres

import (
	"context"

	"github.com/EzraKL/RentalFinder/internal/models"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new user row. Uniqueness of username and email is
// enforced by the table constraints, not pre-checked.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, email, password_hash, role, created_at;`
	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, mapError(err)
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
		SELECT id, username, email, password_hash, role, created_at
		FROM users
		WHERE email = $1;`
	row := s.pool.QueryRow(ctx, query, email)
	user, err := scanUser(row)
	if err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}
