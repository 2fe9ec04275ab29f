package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/service"

	"go.uber.org/zap"
)

// Actions runs one user-triggered action per call. Failures are logged and
// reported through exactly one Warn; they are never returned, so the caller
// only learns whether the action succeeded.
type Actions struct {
	auth     service.AuthService
	devices  service.DeviceService
	reports  service.ReportService
	notifier Notifier
	logger   *zap.Logger
}

// NewActions creates a new Actions
func NewActions(auth service.AuthService, devices service.DeviceService, reports service.ReportService, notifier Notifier, logger *zap.Logger) *Actions {
	return &Actions{
		auth:     auth,
		devices:  devices,
		reports:  reports,
		notifier: notifier,
		logger:   logger,
	}
}

// Login returns the session on success
func (a *Actions) Login(ctx context.Context, username, password string) (*model.Session, bool) {
	session, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		switch {
		case errors.Is(err, service.ErrValidation):
			a.notifier.Warn(TitleInputError, "Please enter both username and password.")
		case errors.Is(err, service.ErrInvalidCredentials):
			a.notifier.Warn(TitleLoginFailed, "Invalid username or password.")
		default:
			a.notifier.Warn(TitleError, occurred(err))
		}
		return nil, false
	}
	return session, true
}

func (a *Actions) Register(ctx context.Context, username, password, confirmPassword string) bool {
	_, err := a.auth.Register(ctx, username, password, confirmPassword)
	if err != nil {
		a.logger.Warn("registration failed", zap.String("username", username), zap.Error(err))
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			a.notifier.Warn(TitleInputError, "Passwords do not match.")
		case errors.Is(err, service.ErrValidation):
			a.notifier.Warn(TitleInputError, "Please fill in all fields.")
		case errors.Is(err, service.ErrUserAlreadyExists):
			a.notifier.Warn(TitleRegistrationFailed, "Username already exists.")
		default:
			a.notifier.Warn(TitleRegistrationFailed, occurred(err))
		}
		return false
	}
	a.notifier.Inform(TitleRegistrationSuccessful, "User registered successfully!")
	return true
}

// LoadDevices returns every device in storage order
func (a *Actions) LoadDevices(ctx context.Context) ([]model.Device, bool) {
	devices, err := a.devices.ListDevices(ctx)
	if err != nil {
		a.logger.Error("failed to load devices", zap.Error(err))
		a.notifier.Warn(TitleError, occurred(err))
		return nil, false
	}
	return devices, true
}

func (a *Actions) AddDevice(ctx context.Context, req model.AddDeviceRequest) (*model.Device, bool) {
	device, err := a.devices.AddDevice(ctx, req)
	if err != nil {
		a.logger.Warn("failed to add device", zap.String("serial_number", req.SerialNumber), zap.Error(err))
		switch {
		case errors.Is(err, service.ErrUnknownDeviceType):
			a.notifier.Warn(TitleInputError, fmt.Sprintf("Please choose a device type: %s.", strings.Join(model.DeviceTypes, ", ")))
		case errors.Is(err, service.ErrValidation):
			a.notifier.Warn(TitleInputError, "Please fill in all required fields.")
		default:
			a.notifier.Warn(TitleError, fmt.Sprintf("Failed to add device: %v", err))
		}
		return nil, false
	}
	a.notifier.Inform(TitleSuccess, "Device added successfully!")
	return device, true
}

// ExportSpreadsheet writes the xlsx report to path. An empty path means the
// user cancelled and nothing happens.
func (a *Actions) ExportSpreadsheet(ctx context.Context, path string) bool {
	return a.export(ctx, path, "Excel", a.reports.ExportSpreadsheet)
}

func (a *Actions) ExportDocument(ctx context.Context, path string) bool {
	return a.export(ctx, path, "PDF", a.reports.ExportDocument)
}

func (a *Actions) ExportCSV(ctx context.Context, path string) bool {
	return a.export(ctx, path, "CSV", a.reports.ExportCSV)
}

func (a *Actions) export(ctx context.Context, path, kind string, run func(context.Context, string) error) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	if err := run(ctx, path); err != nil {
		a.logger.Error("export failed", zap.String("format", kind), zap.String("path", path), zap.Error(err))
		a.notifier.Warn(TitleError, occurred(err))
		return false
	}
	a.notifier.Inform(TitleExportSuccessful, fmt.Sprintf("%s report saved successfully!", kind))
	return true
}

func occurred(err error) string {
	return fmt.Sprintf("An error occurred: %v", err)
}
