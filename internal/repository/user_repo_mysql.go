package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

type mysqlUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a mysql-backed UserRepository
func NewMySQLUserRepository(db *sql.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

// Create inserts a new user into the database
func (r *mysqlUserRepository) Create(ctx context.Context, user *model.User) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	query := `INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`
	result, err := conn.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		if isMySQLDuplicate(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = id
	return nil
}

// FindByUsername retrieves a user by username
func (r *mysqlUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	user := &model.User{}
	query := `SELECT id, username, password_hash, role FROM users WHERE username = ?`
	err = conn.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// UpdatePasswordHash replaces the stored credential of a user
func (r *mysqlUserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %d not found for password update", id)
	}
	return nil
}
