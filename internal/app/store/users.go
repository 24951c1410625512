package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dmchat/internal/app/user"
)

const userColumns = `id::text, email, full_name, password_hash, avatar_url, created_at`

// scanUser reads one user row in userColumns order.
func scanUser(row interface{ Scan(dest ...any) error }) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt)
	return u, err
}

// CreateUser inserts a new account and returns it with the assigned id.
// A duplicate email surfaces as a unique violation (see db.IsUniqueViolation).
func (s *Store) CreateUser(ctx context.Context, email, fullName, passwordHash string) (user.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		email, fullName, passwordHash,
	)

	u, err := scanUser(row)
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail fetches an account by its login email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID fetches an account by its identity key.
func (s *Store) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, fmt.Errorf("get user: invalid id %q: %w", id, err)
	}

	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::uuid`, id)
	return scanUser(row)
}

// ListUsersExcept returns every account except the given one, newest first.
// Feeds the conversation sidebar.
func (s *Store) ListUsersExcept(ctx context.Context, excludeID string) ([]user.User, error) {
	if _, err := uuid.Parse(excludeID); err != nil {
		return nil, fmt.Errorf("list users: invalid id %q: %w", excludeID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id <> $1::uuid
		ORDER BY created_at DESC`,
		excludeID,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("exclude_id", excludeID).Msg("User listing query failed.")
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users scan: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UserExists reports whether the identity refers to a known user.
// A malformed identity is simply an unknown user, not a storage error.
func (s *Store) UserExists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)`, id).Scan(&exists)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("User existence query failed.")
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

// UpdateUserAvatar stores the avatar URL for the account and returns the updated row.
func (s *Store) UpdateUserAvatar(ctx context.Context, id, avatarURL string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, fmt.Errorf("update avatar: invalid id %q: %w", id, err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = $2
		WHERE id = $1::uuid
		RETURNING `+userColumns,
		id, avatarURL,
	)
	return scanUser(row)
}
