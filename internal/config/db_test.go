package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectDB_UnsupportedDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "sqlite", ConnectRetries: 1}}

	store, err := ConnectDB(context.Background(), cfg, zap.NewNop())

	assert.Nil(t, store)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestConnectDB_UnreachableHost(t *testing.T) {
	old := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = old })

	cfg := &Config{Database: DatabaseConfig{
		Driver:         DriverMySQL,
		Host:           "127.0.0.1",
		Port:           1,
		User:           "lab",
		Name:           "inventory",
		ConnectRetries: 2,
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := ConnectDB(ctx, cfg, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestOpenStore_DoesNotDial(t *testing.T) {
	tests := []struct {
		name   string
		driver string
	}{
		{name: "mysql", driver: DriverMySQL},
		{name: "postgres", driver: DriverPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := OpenStore(DatabaseConfig{Driver: tt.driver, Host: "127.0.0.1", Port: 1, User: "lab", Name: "inventory"})

			require.NoError(t, err)
			require.NotNil(t, store)
			assert.NotNil(t, store.Users)
			assert.NotNil(t, store.Devices)
			assert.NoError(t, store.Close())
		})
	}
}

func TestOpenStore_UnreachableDatabaseFailsPerOperation(t *testing.T) {
	store, err := OpenStore(DatabaseConfig{Driver: DriverMySQL, Host: "127.0.0.1", Port: 1, User: "lab", Name: "inventory"})
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = store.Users.FindByUsername(ctx, "alice")
	assert.Error(t, err)

	_, err = store.Devices.FindAll(ctx)
	assert.Error(t, err)
}
