// internal/core/services/device_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/core/services"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/test/helpers"
	"github.com/yfarouk/dealstack-be/test/mocks"
)

func newDeviceService(t *testing.T) (*services.DeviceService, *mocks.MockDeviceRepository, *mocks.MockMediaStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDeviceRepository(ctrl)
	media := mocks.NewMockMediaStore(ctrl)
	svc := services.NewDeviceService(repo, media, helpers.TestLogger())
	return svc, repo, media
}

func TestDeviceService_AddDevice(t *testing.T) {
	tests := []struct {
		name          string
		device        *domain.Device
		setupMocks    func(*mocks.MockDeviceRepository)
		expectedError bool
		errorContains string
	}{
		{
			name:   "successful_save",
			device: helpers.CreateTestDevice(),
			setupMocks: func(m *mocks.MockDeviceRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "validation_fails_for_missing_model",
			device: helpers.CreateTestDevice(func(d *domain.Device) {
				d.Model = ""
			}),
			setupMocks:    func(m *mocks.MockDeviceRepository) {},
			expectedError: true,
			errorContains: "model is required",
		},
		{
			name: "validation_fails_for_negative_price",
			device: helpers.CreateTestDevice(func(d *domain.Device) {
				d.BasePrice = decimal.NewFromFloat(-50)
			}),
			setupMocks:    func(m *mocks.MockDeviceRepository) {},
			expectedError: true,
			errorContains: "base_price cannot be negative",
		},
		{
			name:   "repository_save_error",
			device: helpers.CreateTestDevice(),
			setupMocks: func(m *mocks.MockDeviceRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedError: true,
			errorContains: "database connection failed",
		},
		{
			name: "derives_sold_status_for_zero_quantity",
			device: helpers.CreateTestDevice(func(d *domain.Device) {
				d.Quantity = 0
			}),
			setupMocks: func(m *mocks.MockDeviceRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, device *domain.Device) error {
						assert.Equal(t, domain.StatusSold, device.Status)
						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newDeviceService(t)
			tt.setupMocks(repo)

			err := svc.AddDevice(context.Background(), helpers.TestSession(), tt.device)
			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, helpers.TestDealerID, tt.device.DealerID)
			}
		})
	}
}

func TestDeviceService_AddDevice_Unauthenticated(t *testing.T) {
	svc, _, _ := newDeviceService(t)

	err := svc.AddDevice(context.Background(), identity.Session{}, helpers.CreateTestDevice())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDeviceService_ImportDevices(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	devices := helpers.CreateTestDevices(5)

	repo.EXPECT().
		SaveBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, batch []domain.Device) error {
			require.Len(t, batch, 5)
			for _, d := range batch {
				assert.Equal(t, helpers.TestDealerID, d.DealerID)
				assert.NotEqual(t, uuid.Nil, d.ID)
			}
			return nil
		})

	err := svc.ImportDevices(context.Background(), helpers.TestSession(), devices)
	require.NoError(t, err)
}

func TestDeviceService_ImportDevices_EmptyBatchIsNoop(t *testing.T) {
	svc, _, _ := newDeviceService(t)

	err := svc.ImportDevices(context.Background(), helpers.TestSession(), nil)
	require.NoError(t, err)
}

func TestDeviceService_ImportDevices_BadRowAbortsBatch(t *testing.T) {
	svc, _, _ := newDeviceService(t)
	devices := helpers.CreateTestDevices(3)
	devices[1].BasePrice = decimal.NewFromFloat(-1)

	err := svc.ImportDevices(context.Background(), helpers.TestSession(), devices)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeviceService_GetDevice_NotFound(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	id := uuid.New()

	repo.EXPECT().
		FindByID(gomock.Any(), helpers.TestDealerID, id).
		Return(nil, nil)

	_, err := svc.GetDevice(context.Background(), helpers.TestSession(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeviceService_UpdateDevice_RederivesStatus(t *testing.T) {
	svc, repo, _ := newDeviceService(t)
	id := uuid.New()
	device := helpers.CreateTestDevice(func(d *domain.Device) {
		d.Quantity = 0
		d.Status = domain.StatusAvailable
	})

	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *domain.Device) error {
			assert.Equal(t, id, d.ID)
			assert.Equal(t, domain.StatusSold, d.Status)
			return nil
		})

	err := svc.UpdateDevice(context.Background(), helpers.TestSession(), id, device)
	require.NoError(t, err)
}

func TestDeviceService_DeleteDevice(t *testing.T) {
	t.Run("deletes_record_and_media", func(t *testing.T) {
		svc, repo, media := newDeviceService(t)
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Images = []string{"devices/a/1.jpg", "devices/a/2.jpg"}
		})

		repo.EXPECT().
			FindByID(gomock.Any(), helpers.TestDealerID, device.ID).
			Return(device, nil)
		repo.EXPECT().
			Delete(gomock.Any(), device.ID).
			Return(nil)
		media.EXPECT().
			DeleteMultiple(gomock.Any(), device.Images).
			Return(nil)

		err := svc.DeleteDevice(context.Background(), helpers.TestSession(), device.ID)
		require.NoError(t, err)
	})

	t.Run("media_failure_is_non_fatal", func(t *testing.T) {
		svc, repo, media := newDeviceService(t)
		device := helpers.CreateTestDevice(func(d *domain.Device) {
			d.Images = []string{"devices/a/1.jpg"}
		})

		repo.EXPECT().
			FindByID(gomock.Any(), helpers.TestDealerID, device.ID).
			Return(device, nil)
		repo.EXPECT().
			Delete(gomock.Any(), device.ID).
			Return(nil)
		media.EXPECT().
			DeleteMultiple(gomock.Any(), gomock.Any()).
			Return(errors.New("s3 unreachable"))

		err := svc.DeleteDevice(context.Background(), helpers.TestSession(), device.ID)
		require.NoError(t, err)
	})

	t.Run("other_dealers_device_is_permission_denied", func(t *testing.T) {
		svc, repo, _ := newDeviceService(t)
		id := uuid.New()

		repo.EXPECT().
			FindByID(gomock.Any(), helpers.TestDealerID, id).
			Return(nil, nil)
		repo.EXPECT().
			Exists(gomock.Any(), id).
			Return(true, nil)

		err := svc.DeleteDevice(context.Background(), helpers.TestSession(), id)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("missing_device_is_not_found", func(t *testing.T) {
		svc, repo, _ := newDeviceService(t)
		id := uuid.New()

		repo.EXPECT().
			FindByID(gomock.Any(), helpers.TestDealerID, id).
			Return(nil, nil)
		repo.EXPECT().
			Exists(gomock.Any(), id).
			Return(false, nil)

		err := svc.DeleteDevice(context.Background(), helpers.TestSession(), id)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeviceService_UpdateDeviceStatus(t *testing.T) {
	t.Run("rejects_empty_ids", func(t *testing.T) {
		svc, _, _ := newDeviceService(t)

		err := svc.UpdateDeviceStatus(context.Background(), helpers.TestSession(), nil, domain.StatusSold)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		svc, _, _ := newDeviceService(t)

		err := svc.UpdateDeviceStatus(context.Background(), helpers.TestSession(),
			[]uuid.UUID{uuid.New()}, domain.DeviceStatus("archived"))

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("updates_batch", func(t *testing.T) {
		svc, repo, _ := newDeviceService(t)
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		repo.EXPECT().
			UpdateStatusBatch(gomock.Any(), helpers.TestDealerID, ids, domain.StatusSold).
			Return(nil)

		err := svc.UpdateDeviceStatus(context.Background(), helpers.TestSession(), ids, domain.StatusSold)
		require.NoError(t, err)
	})
}

func TestDeviceService_ListDevices_Defaults(t *testing.T) {
	svc, repo, _ := newDeviceService(t)

	repo.EXPECT().
		FindAll(gomock.Any(), helpers.TestDealerID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, dealerID string, params ports.DeviceListParams) ([]*domain.Device, int64, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 50, params.PageSize)
			return []*domain.Device{helpers.CreateTestDevice()}, 1, nil
		})

	result, err := svc.ListDevices(context.Background(), helpers.TestSession(), ports.DeviceListParams{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
}
