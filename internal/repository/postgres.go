package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PgConn is the subset of *pgx.Conn the repositories use
type PgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// PgConnectFunc opens a fresh connection. Every repository call opens its own
// connection and closes it before returning.
type PgConnectFunc func(ctx context.Context) (PgConn, error)

// PgxConnector returns a PgConnectFunc dialing connString with pgx
func PgxConnector(connString string) PgConnectFunc {
	return func(ctx context.Context) (PgConn, error) {
		conn, err := pgx.Connect(ctx, connString)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

func closePg(ctx context.Context, conn PgConn) {
	_ = conn.Close(context.WithoutCancel(ctx))
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
