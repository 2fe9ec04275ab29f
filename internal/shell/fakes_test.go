package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/repository"
)

type notification struct {
	kind    string
	title   string
	message string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notification
}

func (n *recordingNotifier) Warn(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, notification{kind: "warn", title: title, message: message})
}

func (n *recordingNotifier) Inform(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, notification{kind: "inform", title: title, message: message})
}

type stubAuthService struct {
	session     *model.Session
	loginErr    error
	registerErr error
}

func (s *stubAuthService) Register(ctx context.Context, username, password, confirmPassword string) (*model.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &model.User{ID: 1, Username: username, Role: model.RoleUser}, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.session, nil
}

type stubDeviceService struct {
	devices []model.Device
	listErr error
	addErr  error
}

func (s *stubDeviceService) ListDevices(ctx context.Context) ([]model.Device, error) {
	return s.devices, s.listErr
}

func (s *stubDeviceService) AddDevice(ctx context.Context, req model.AddDeviceRequest) (*model.Device, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &model.Device{ID: 1, Name: req.Name}, nil
}

type stubReportService struct {
	err   error
	paths []string
}

func (s *stubReportService) record(path string) error {
	s.paths = append(s.paths, path)
	return s.err
}

func (s *stubReportService) WriteSpreadsheet(ctx context.Context, w io.Writer) error { return s.err }
func (s *stubReportService) WriteDocument(ctx context.Context, w io.Writer) error { return s.err }
func (s *stubReportService) WriteCSV(ctx context.Context, w io.Writer) error { return s.err }

func (s *stubReportService) ExportSpreadsheet(ctx context.Context, path string) error {
	return s.record(path)
}

func (s *stubReportService) ExportDocument(ctx context.Context, path string) error {
	return s.record(path)
}

func (s *stubReportService) ExportCSV(ctx context.Context, path string) error {
	return s.record(path)
}

// memUserRepository and memDeviceRepository back the real services in
// console tests.
type memUserRepository struct {
	users []model.User
	err   error
}

func (r *memUserRepository) Create(ctx context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("failed to create user: %w", repository.ErrDuplicate)
		}
	}
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return errors.New("not supported")
}

type memDeviceRepository struct {
	devices []model.Device
	err     error
}

func (r *memDeviceRepository) Create(ctx context.Context, d *model.Device) error {
	d.ID = int64(len(r.devices) + 1)
	r.devices = append(r.devices, *d)
	return nil
}

func (r *memDeviceRepository) FindAll(ctx context.Context) ([]model.Device, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]model.Device{}, r.devices...), nil
}
