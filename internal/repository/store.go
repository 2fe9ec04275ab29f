package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Store bundles the repositories of one database backend
type Store struct {
	Users   UserRepository
	Devices DeviceRepository

	ping  func(ctx context.Context) error
	close func() error
}

// NewPostgresStore wires the postgres repositories to a connect function
func NewPostgresStore(connect PgConnectFunc) *Store {
	return &Store{
		Users:   NewUserRepository(connect),
		Devices: NewDeviceRepository(connect),
		ping: func(ctx context.Context) error {
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closePg(ctx, conn)
			return conn.Ping(ctx)
		},
		close: func() error { return nil },
	}
}

// NewMySQLStore wires the mysql repositories to db
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Users:   NewMySQLUserRepository(db),
		Devices: NewMySQLDeviceRepository(db),
		ping:    db.PingContext,
		close:   db.Close,
	}
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close releases backend resources
func (s *Store) Close() error {
	return s.close()
}
