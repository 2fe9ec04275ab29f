package service

import (
	"context"
	"sync"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

// fakeUserRepository is an in-memory credential store without a uniqueness constraint
type fakeUserRepository struct {
	mu        sync.Mutex
	users     []model.User
	calls     int
	findErr   error
	createErr error
	updateErr error
}

func (r *fakeUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepository) countByUsername(username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.Username == username {
			n++
		}
	}
	return n
}

type fakeDeviceRepository struct {
	mu        sync.Mutex
	devices   []model.Device
	createErr error
	findErr   error
}

func (r *fakeDeviceRepository) Create(ctx context.Context, d *model.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	d.ID = int64(len(r.devices) + 1)
	r.devices = append(r.devices, *d)
	return nil
}

func (r *fakeDeviceRepository) FindAll(ctx context.Context) ([]model.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return append([]model.Device{}, r.devices...), nil
}
