package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yfarouk/dealstack-be/internal/handlers/middleware"
	"github.com/yfarouk/dealstack-be/internal/pkg/identity"
)

const testSecret = "test-secret-test-secret-test-secret"

func TestAuthenticate(t *testing.T) {
	var captured identity.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = identity.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := middleware.Authenticate(testSecret)(handler)

	t.Run("valid_token_sets_session", func(t *testing.T) {
		token, err := middleware.IssueDealerToken("dealer-42", testSecret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/devices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "dealer-42", captured.DealerID)
		assert.True(t, captured.Valid())
	})

	t.Run("missing_header_is_401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/devices", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing bearer token")
	})

	t.Run("garbage_token_is_401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/devices", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong_secret_is_401", func(t *testing.T) {
		token, err := middleware.IssueDealerToken("dealer-42", "some-other-secret", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/devices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired_token_is_401", func(t *testing.T) {
		token, err := middleware.IssueDealerToken("dealer-42", testSecret, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/devices", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIssueDealerToken_RoundTrip(t *testing.T) {
	token, err := middleware.IssueDealerToken("dealer-rt", testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identity.FromContext(r.Context()).DealerID
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	middleware.Authenticate(testSecret)(handler).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "dealer-rt", got)
}
