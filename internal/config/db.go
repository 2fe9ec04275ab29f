package config

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Donny1114/Device-Management-System/internal/repository"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// retryInterval is the pause between connection attempts
var retryInterval = 5 * time.Second

// MySQLDSN returns the go-sql-driver/mysql data source name
func (d DatabaseConfig) MySQLDSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = d.Host + ":" + strconv.Itoa(d.Port)
	mc.DBName = d.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

// PostgresDSN returns the libpq keyword/value connection string
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// ConnectDB opens the configured backend and pings it, retrying up to
// ConnectRetries times. No connection is kept open between operations.
func ConnectDB(ctx context.Context, cfg *Config, logger *zap.Logger) (*repository.Store, error) {
	store, err := OpenStore(cfg.Database)
	if err != nil {
		return nil, err
	}

	maxRetries := cfg.Database.ConnectRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for i := 0; i < maxRetries; i++ {
		err = store.Ping(ctx)
		if err == nil {
			logger.Info("connected to database",
				zap.String("driver", cfg.Database.Driver),
				zap.String("host", cfg.Database.Host),
				zap.String("database", cfg.Database.Name),
			)
			return store, nil
		}
		if i == maxRetries-1 {
			break
		}
		logger.Warn("failed to connect to database, retrying",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_in", retryInterval),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			store.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	store.Close()
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// OpenStore builds the repositories of the configured backend without
// contacting the database.
func OpenStore(d DatabaseConfig) (*repository.Store, error) {
	switch d.Driver {
	case DriverPostgres:
		return repository.NewPostgresStore(repository.PgxConnector(d.PostgresDSN())), nil
	case DriverMySQL, "":
		db, err := sql.Open("mysql", d.MySQLDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql: %w", err)
		}
		// connections are dialed per operation and released afterwards
		db.SetMaxIdleConns(0)
		return repository.NewMySQLStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
	}
}
