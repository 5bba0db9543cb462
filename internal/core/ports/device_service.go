// internal/core/ports/device_service.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

// DeviceService defines the application service port for the
// inventory ledger. Implemented by services.DeviceService.
type DeviceService interface {
	AddDevice(ctx context.Context, session identity.Session, device *domain.Device) error
	ImportDevices(ctx context.Context, session identity.Session, devices []domain.Device) error
	GetDevice(ctx context.Context, session identity.Session, id uuid.UUID) (*domain.Device, error)
	UpdateDevice(ctx context.Context, session identity.Session, id uuid.UUID, device *domain.Device) error
	DeleteDevice(ctx context.Context, session identity.Session, id uuid.UUID) error
	UpdateDeviceStatus(ctx context.Context, session identity.Session, ids []uuid.UUID, status domain.DeviceStatus) error
	ListDevices(ctx context.Context, session identity.Session, params DeviceListParams) (*DeviceListResult, error)
}

// DeviceListParams holds parameters for listing devices
type DeviceListParams struct {
	Search    string
	Brand     string
	Status    string
	IsPublic  *bool
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// DeviceListResult holds one page of devices
type DeviceListResult struct {
	Devices    []*domain.Device `json:"devices"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int64            `json:"total_count"`
	TotalPages int              `json:"total_pages"`
}
