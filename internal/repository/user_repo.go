package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Donny1114/Device-Management-System/internal/model"

	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	connect PgConnectFunc
}

// NewUserRepository creates a postgres-backed UserRepository
func NewUserRepository(connect PgConnectFunc) UserRepository {
	return &userRepository{connect: connect}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePg(ctx, conn)

	sql := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id`
	err = conn.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if isPgUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePg(ctx, conn)

	user := &model.User{}
	sql := `SELECT id, username, password_hash, role FROM users WHERE username = $1`
	err = conn.QueryRow(ctx, sql, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// UpdatePasswordHash replaces the stored credential of a user
func (r *userRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	conn, err := r.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePg(ctx, conn)

	cmdTag, err := conn.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found for password update", id)
	}
	return nil
}
