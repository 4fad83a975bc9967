package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"product-service/app/domain"
	"product-service/app/port"
)

const (
	getUsersQuery = `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM get_users($1::TEXT, $2::TEXT, $3::TEXT, $4::INTEGER)`

	insertUserQuery = `SELECT insert_user($1::TEXT, $2::TEXT, $3::TEXT, $4::TEXT)`

	updateUserQuery = `SELECT update_user($1::TEXT, $2::TEXT, $3::TEXT, $4::INTEGER, $5::TEXT)`
)

// UserRepository implements port.UserRepository on the user stored procedures
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// GetUsers returns every user matching filter. Nil filter fields match all rows.
func (r *UserRepository) GetUsers(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, getUsersQuery,
		filter.FirstName,
		filter.LastName,
		filter.Email,
		filter.ID,
	)
	if err != nil {
		r.logger.Error("failed to query users", "error", err)
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// InsertUser stores a new account and returns its id. A zero id means the
// procedure created nothing.
func (r *UserRepository) InsertUser(ctx context.Context, user *domain.NewUser) (int, error) {
	var id *int
	err := r.db.QueryRow(ctx, insertUserQuery,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	if id == nil {
		return 0, nil
	}

	r.logger.Info("user inserted", "user_id", *id)
	return *id, nil
}

// UpdateUser replaces the stored profile. A nil PasswordHash keeps the
// current credential.
func (r *UserRepository) UpdateUser(ctx context.Context, update *domain.UserUpdate) (bool, error) {
	var updated *bool
	err := r.db.QueryRow(ctx, updateUserQuery,
		update.FirstName,
		update.LastName,
		update.Email,
		update.ID,
		update.PasswordHash,
	).Scan(&updated)
	if err != nil {
		r.logger.Error("failed to update user", "user_id", update.ID, "error", err)
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	return updated != nil && *updated, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
