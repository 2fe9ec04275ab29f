package repository

import (
	"context"
	"errors"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

// ErrDuplicate is returned when the database rejects a row on a uniqueness constraint
var ErrDuplicate = errors.New("duplicate key")

// UserRepository defines operations for the credential store
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

// DeviceRepository defines operations for the device registry. Only append
// and full scan are supported.
type DeviceRepository interface {
	Create(ctx context.Context, device *model.Device) error
	FindAll(ctx context.Context) ([]model.Device, error)
}
