// internal/handlers/devices_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yfarouk/dealstack-be/internal/core/domain"
	"github.com/yfarouk/dealstack-be/internal/core/ports"
	"github.com/yfarouk/dealstack-be/internal/handlers"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
	"github.com/yfarouk/dealstack-be/test/helpers"
	"github.com/yfarouk/dealstack-be/test/mocks"
)

func newDeviceHandler(t *testing.T) (*handlers.DeviceHandler, *mocks.MockDeviceService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockDeviceService(ctrl)
	return handlers.NewDeviceHandler(service, helpers.TestLogger()), service
}

// authedRequest builds a request carrying the test dealer session,
// the way the auth middleware would.
func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(identity.WithSession(req.Context(), helpers.TestSession()))
}

func TestDeviceHandler_CreateDevice(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockDeviceService)
		expectedStatus int
	}{
		{
			name: "creates_device",
			body: `{"brand":"Samsung","model":"Galaxy S23","base_price":"450.00","quantity":3}`,
			setupMocks: func(m *mocks.MockDeviceService) {
				m.EXPECT().
					AddDevice(gomock.Any(), helpers.TestSession(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, s identity.Session, d *domain.Device) error {
						assert.Equal(t, "Samsung", d.Brand)
						assert.Equal(t, "Galaxy S23", d.Model)
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rejects_invalid_json",
			body:           `{not json`,
			setupMocks:     func(m *mocks.MockDeviceService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects_missing_model",
			body:           `{"brand":"Samsung","base_price":"450.00"}`,
			setupMocks:     func(m *mocks.MockDeviceService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects_missing_brand_for_non_iphone",
			body:           `{"model":"Galaxy S23","base_price":"450.00"}`,
			setupMocks:     func(m *mocks.MockDeviceService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "allows_missing_brand_for_iphone",
			body: `{"model":"iPhone 13","is_iphone":true,"base_price":"600.00","quantity":1}`,
			setupMocks: func(m *mocks.MockDeviceService) {
				m.EXPECT().
					AddDevice(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "maps_service_errors",
			body: `{"brand":"Samsung","model":"Galaxy S23","base_price":"450.00"}`,
			setupMocks: func(m *mocks.MockDeviceService) {
				m.EXPECT().
					AddDevice(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(domain.ErrUnauthenticated)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := newDeviceHandler(t)
			tt.setupMocks(service)

			req := authedRequest(http.MethodPost, "/api/v1/devices", []byte(tt.body))
			rec := httptest.NewRecorder()

			handler.CreateDevice(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestDeviceHandler_GetDevice(t *testing.T) {
	t.Run("returns_device", func(t *testing.T) {
		handler, service := newDeviceHandler(t)
		device := helpers.CreateTestDevice()

		service.EXPECT().
			GetDevice(gomock.Any(), helpers.TestSession(), device.ID).
			Return(device, nil)

		req := authedRequest(http.MethodGet, "/api/v1/devices/"+device.ID.String(), nil)
		req.SetPathValue("id", device.ID.String())
		rec := httptest.NewRecorder()

		handler.GetDevice(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Device
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, device.ID, got.ID)
		assert.Equal(t, device.Model, got.Model)
	})

	t.Run("rejects_malformed_id", func(t *testing.T) {
		handler, _ := newDeviceHandler(t)

		req := authedRequest(http.MethodGet, "/api/v1/devices/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()

		handler.GetDevice(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing_device_is_404", func(t *testing.T) {
		handler, service := newDeviceHandler(t)
		id := uuid.New()

		service.EXPECT().
			GetDevice(gomock.Any(), gomock.Any(), id).
			Return(nil, domain.ErrNotFound)

		req := authedRequest(http.MethodGet, "/api/v1/devices/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.GetDevice(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeviceHandler_ListDevices(t *testing.T) {
	handler, service := newDeviceHandler(t)

	service.EXPECT().
		ListDevices(gomock.Any(), helpers.TestSession(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, s identity.Session, params ports.DeviceListParams) (*ports.DeviceListResult, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 100, params.PageSize) // capped from 500
			assert.Equal(t, "Samsung", params.Brand)
			require.NotNil(t, params.IsPublic)
			assert.True(t, *params.IsPublic)
			return &ports.DeviceListResult{
				Devices:    []*domain.Device{helpers.CreateTestDevice()},
				Page:       2,
				PageSize:   100,
				TotalCount: 1,
				TotalPages: 1,
			}, nil
		})

	req := authedRequest(http.MethodGet, "/api/v1/devices?page=2&limit=500&brand=Samsung&is_public=true", nil)
	rec := httptest.NewRecorder()

	handler.ListDevices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ports.DeviceListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Devices, 1)
}

func TestDeviceHandler_DeleteDevice(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		handler, service := newDeviceHandler(t)
		id := uuid.New()

		service.EXPECT().
			DeleteDevice(gomock.Any(), helpers.TestSession(), id).
			Return(nil)

		req := authedRequest(http.MethodDelete, "/api/v1/devices/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.DeleteDevice(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign_device_is_403", func(t *testing.T) {
		handler, service := newDeviceHandler(t)
		id := uuid.New()

		service.EXPECT().
			DeleteDevice(gomock.Any(), gomock.Any(), id).
			Return(domain.ErrPermissionDenied)

		req := authedRequest(http.MethodDelete, "/api/v1/devices/"+id.String(), nil)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		handler.DeleteDevice(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDeviceHandler_UpdateDeviceStatus(t *testing.T) {
	t.Run("updates_batch", func(t *testing.T) {
		handler, service := newDeviceHandler(t)
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		service.EXPECT().
			UpdateDeviceStatus(gomock.Any(), helpers.TestSession(), ids, domain.StatusSold).
			Return(nil)

		body, _ := json.Marshal(map[string]interface{}{
			"ids":    ids,
			"status": "sold",
		})
		req := authedRequest(http.MethodPatch, "/api/v1/devices/status", body)
		rec := httptest.NewRecorder()

		handler.UpdateDeviceStatus(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		handler, _ := newDeviceHandler(t)

		body := []byte(`{"ids":["` + uuid.New().String() + `"],"status":"archived"}`)
		req := authedRequest(http.MethodPatch, "/api/v1/devices/status", body)
		rec := httptest.NewRecorder()

		handler.UpdateDeviceStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects_empty_ids", func(t *testing.T) {
		handler, _ := newDeviceHandler(t)

		body := []byte(`{"ids":[],"status":"sold"}`)
		req := authedRequest(http.MethodPatch, "/api/v1/devices/status", body)
		rec := httptest.NewRecorder()

		handler.UpdateDeviceStatus(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
