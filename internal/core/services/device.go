// internal/core/services/device.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// DeviceService handles inventory ledger business logic
type DeviceService struct {
	repo   ports.DeviceRepository
	media  ports.MediaStore
	logger *slog.Logger
}

// Statically assert that *DeviceService implements the DeviceService port.
var _ ports.DeviceService = (*DeviceService)(nil)

// NewDeviceService creates a new device service
func NewDeviceService(repo ports.DeviceRepository, media ports.MediaStore, logger *slog.Logger) *DeviceService {
	return &DeviceService{
		repo:   repo,
		media:  media,
		logger: logger.With(slog.String("service", "devices")),
	}
}

// AddDevice validates and persists a new device for the dealer
func (s *DeviceService) AddDevice(ctx context.Context, session identity.Session, device *domain.Device) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}

	device.DealerID = session.DealerID
	if err := device.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	device.PrepareForStorage()

	if err := s.repo.Save(ctx, device); err != nil {
		return fmt.Errorf("failed to save device: %w", err)
	}

	s.logger.InfoContext(ctx, "device added",
		slog.String("id", device.ID.String()),
		slog.String("brand", device.Brand),
		slog.String("model", device.Model))

	return nil
}

// ImportDevices validates and persists a batch of devices in one
// transaction. Used by the Excel import worker and the seeder.
func (s *DeviceService) ImportDevices(ctx context.Context, session identity.Session, devices []domain.Device) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}
	if len(devices) == 0 {
		s.logger.InfoContext(ctx, "no devices to import")
		return nil
	}

	for i := range devices {
		devices[i].DealerID = session.DealerID
		if err := devices[i].Validate(); err != nil {
			return fmt.Errorf("validation failed for device %s: %w", devices[i].Model, err)
		}
		devices[i].PrepareForStorage()
	}

	if err := s.repo.SaveBatch(ctx, devices); err != nil {
		return fmt.Errorf("failed to import devices: %w", err)
	}

	s.logger.InfoContext(ctx, "devices imported",
		slog.Int("count", len(devices)))

	return nil
}

// GetDevice retrieves one of the dealer's devices
func (s *DeviceService) GetDevice(ctx context.Context, session identity.Session, id uuid.UUID) (*domain.Device, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	device, err := s.repo.FindByID(ctx, session.DealerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	if device == nil {
		return nil, fmt.Errorf("%w: device %s", domain.ErrNotFound, id)
	}

	return device, nil
}

// UpdateDevice overwrites a device record. This is the dealer
// correction path; quantity written here is absolute.
func (s *DeviceService) UpdateDevice(ctx context.Context, session identity.Session, id uuid.UUID, device *domain.Device) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}

	device.ID = id
	device.DealerID = session.DealerID

	if err := device.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	device.DeriveStatus()

	if err := s.repo.Update(ctx, device); err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}

	s.logger.InfoContext(ctx, "device updated",
		slog.String("id", id.String()))

	return nil
}

// DeleteDevice removes a device after verifying ownership, then makes
// a best-effort attempt to delete its media. Media failures are
// logged, never propagated; the record deletion already succeeded.
func (s *DeviceService) DeleteDevice(ctx context.Context, session identity.Session, id uuid.UUID) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}

	device, err := s.repo.FindByID(ctx, session.DealerID, id)
	if err != nil {
		return fmt.Errorf("failed to check device: %w", err)
	}
	if device == nil {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check device existence: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: device %s belongs to another dealer", domain.ErrPermissionDenied, id)
		}
		return fmt.Errorf("%w: device %s", domain.ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	if len(device.Images) > 0 {
		if err := s.media.DeleteMultiple(ctx, device.Images); err != nil {
			s.logger.WarnContext(ctx, "failed to delete device media",
				slog.String("id", id.String()),
				slog.Int("images", len(device.Images)),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "device deleted",
		slog.String("id", id.String()))

	return nil
}

// UpdateDeviceStatus flips status across the given devices in one
// all-or-nothing write. Administrative primitive; settlement never
// calls it.
func (s *DeviceService) UpdateDeviceStatus(ctx context.Context, session identity.Session, ids []uuid.UUID, status domain.DeviceStatus) error {
	if !session.Valid() {
		return domain.ErrUnauthenticated
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: no device ids given", domain.ErrInvalidInput)
	}
	switch status {
	case domain.StatusAvailable, domain.StatusSold:
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	if err := s.repo.UpdateStatusBatch(ctx, session.DealerID, ids, status); err != nil {
		return fmt.Errorf("failed to update device status: %w", err)
	}

	return nil
}

// ListDevices retrieves the dealer's devices with filtering and pagination
func (s *DeviceService) ListDevices(ctx context.Context, session identity.Session, params ports.DeviceListParams) (*ports.DeviceListResult, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 50
	}

	devices, totalCount, err := s.repo.FindAll(ctx, session.DealerID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	totalPages := int(totalCount) / params.PageSize
	if int(totalCount)%params.PageSize > 0 {
		totalPages++
	}

	return &ports.DeviceListResult{
		Devices:    devices,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}
