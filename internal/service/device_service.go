package service

import (
	"context"
	"strings"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/repository"

	"go.uber.org/zap"
)

// DeviceService exposes the device registry
type DeviceService interface {
	ListDevices(ctx context.Context) ([]model.Device, error)
	AddDevice(ctx context.Context, req model.AddDeviceRequest) (*model.Device, error)
}

type deviceService struct {
	repo   repository.DeviceRepository
	logger *zap.Logger
}

// NewDeviceService creates a new DeviceService
func NewDeviceService(repo repository.DeviceRepository, logger *zap.Logger) DeviceService {
	return &deviceService{repo: repo, logger: logger}
}

func (s *deviceService) ListDevices(ctx context.Context) ([]model.Device, error) {
	devices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dataAccessError(err)
	}
	return devices, nil
}

// AddDevice validates presence of name, type, count and serial, then appends
// the row. Count is stored exactly as entered.
func (s *deviceService) AddDevice(ctx context.Context, req model.AddDeviceRequest) (*model.Device, error) {
	if isBlank(req.Name) || isBlank(req.Type) || isBlank(req.Count) || isBlank(req.SerialNumber) {
		return nil, ErrMissingFields
	}
	if !model.IsDeviceType(req.Type) {
		return nil, ErrUnknownDeviceType
	}

	device := &model.Device{
		Name:         req.Name,
		Type:         req.Type,
		Count:        req.Count,
		SerialNumber: req.SerialNumber,
		Issues:       req.Issues,
		Comment:      req.Comment,
	}
	if err := s.repo.Create(ctx, device); err != nil {
		return nil, dataAccessError(err)
	}

	s.logger.Info("device added",
		zap.Int64("device_id", device.ID),
		zap.String("type", device.Type),
		zap.String("serial_number", device.SerialNumber),
	)
	return device, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
