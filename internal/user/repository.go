package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hfarhan/workhub/internal/rbac"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, name, email string, role rbac.Role, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (name, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, role, password_hash, created_at
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, name, email, string(role), passwordHash))
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// List retrieves all users
func (r *Repository) List(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, name, email, role, password_hash, created_at
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *Repository) scanOne(row *sql.Row) (*User, error) {
	user, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// scanUser maps a row onto a User, validating the stored role against the
// closed enum so an unknown role is rejected at this boundary, never defaulted
func scanUser(scan func(dest ...interface{}) error) (*User, error) {
	user := &User{}
	var role string
	if err := scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&role,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	parsed, err := rbac.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", user.ID, err)
	}
	user.Role = parsed

	return user, nil
}
