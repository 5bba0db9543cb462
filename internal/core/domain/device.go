// internal/core/domain/device.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeviceStatus represents the stock status of a device
type DeviceStatus string

const (
	StatusAvailable DeviceStatus = "available"
	StatusSold      DeviceStatus = "sold"
)

// DeviceCondition is a free-text grade; these are the common values
type DeviceCondition string

const (
	ConditionNew       DeviceCondition = "new"
	ConditionExcellent DeviceCondition = "excellent"
	ConditionGood      DeviceCondition = "good"
	ConditionFair      DeviceCondition = "fair"
	ConditionPoor      DeviceCondition = "poor"
)

// MaxDeviceImages caps the number of media references per device
const MaxDeviceImages = 4

// Device represents one trackable phone/device stock record
type Device struct {
	ID        uuid.UUID       `json:"id"`
	DealerID  string          `json:"dealer_id"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Condition DeviceCondition `json:"condition"`
	StorageGB int             `json:"storage_gb"`
	RamGB     *int            `json:"ram_gb,omitempty"`
	BasePrice decimal.Decimal `json:"base_price"`
	Quantity  int             `json:"quantity"`
	IsIphone  bool            `json:"is_iphone"`
	Images    []string        `json:"images,omitempty"`
	Status    DeviceStatus    `json:"status"`
	IsPublic  bool            `json:"is_public"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the device
func (d *Device) Validate() error {
	if d.DealerID == "" {
		return fmt.Errorf("%w: dealer_id is required", ErrUnauthenticated)
	}
	if d.IsIphone {
		// brand is derived for iPhones, and single-config devices
		// carry no RAM variant
		d.Brand = "Apple"
		d.RamGB = nil
	}
	if d.Brand == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	}
	if d.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if d.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}
	if d.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base_price cannot be negative", ErrInvalidInput)
	}
	if len(d.Images) > MaxDeviceImages {
		return fmt.Errorf("%w: at most %d images allowed", ErrInvalidInput, MaxDeviceImages)
	}
	if d.Condition == "" {
		d.Condition = ConditionGood
	}
	return nil
}

// DeriveStatus recomputes status from quantity. Status is a cache of
// quantity reaching the floor, never an independent source of truth.
func (d *Device) DeriveStatus() {
	if d.Quantity == 0 {
		d.Status = StatusSold
	} else {
		d.Status = StatusAvailable
	}
}

// PrepareForStorage prepares the device for database storage
func (d *Device) PrepareForStorage() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.DeriveStatus()

	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}
