package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apperrors "clouddictionary/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireTier(t *testing.T) {
	keys := AccessKeys{FunctionKey: "fn-key", AdminKey: "admin-key"}
	errorHandler := apperrors.NewErrorHandler(zap.NewNop(), false)

	tests := []struct {
		name   string
		keys   AccessKeys
		tier   Tier
		target string
		header string
		want   int
	}{
		{name: "Should allow open endpoints without a key", keys: keys, tier: TierOpen, target: "/", want: http.StatusOK},
		{name: "Should reject restricted endpoints without a key", keys: keys, tier: TierRestricted, target: "/", want: http.StatusUnauthorized},
		{name: "Should accept the function key as code", keys: keys, tier: TierRestricted, target: "/?code=fn-key", want: http.StatusOK},
		{name: "Should accept the function key header", keys: keys, tier: TierRestricted, target: "/", header: "fn-key", want: http.StatusOK},
		{name: "Should accept the admin key on restricted endpoints", keys: keys, tier: TierRestricted, target: "/?code=admin-key", want: http.StatusOK},
		{name: "Should reject the function key on admin endpoints", keys: keys, tier: TierAdmin, target: "/?code=fn-key", want: http.StatusUnauthorized},
		{name: "Should accept the admin key on admin endpoints", keys: keys, tier: TierAdmin, target: "/", header: "admin-key", want: http.StatusOK},
		{name: "Should reject a wrong key", keys: keys, tier: TierRestricted, target: "/?code=guess", want: http.StatusUnauthorized},
		{name: "Should skip the check when no keys are configured", keys: AccessKeys{}, tier: TierAdmin, target: "/", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			handler := RequireTier(tt.keys, tt.tier, errorHandler)(http.HandlerFunc(okHandler))
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(FunctionKeyHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"A valid access key is required."}`, rec.Body.String())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Run("Should log method, path and status", func(t *testing.T) {
		// Arrange
		core, logs := observer.New(zap.InfoLevel)
		handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/GetAllDefinitions", nil))

		// Assert
		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "GET", fields["method"])
		assert.Equal(t, "/api/GetAllDefinitions", fields["path"])
		assert.EqualValues(t, http.StatusTeapot, fields["status"])
	})

	t.Run("Should log server errors at error level", func(t *testing.T) {
		// Arrange
		core, logs := observer.New(zap.InfoLevel)
		handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		// Act
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		// Assert
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
	})
}

type recordedRequest struct {
	method, route, status string
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func TestMetrics(t *testing.T) {
	t.Run("Should label requests by route pattern", func(t *testing.T) {
		// Arrange
		recorder := &fakeRecorder{}
		router := chi.NewRouter()
		router.Use(Metrics(recorder))
		router.Put("/UpdateDefinition/{id}", okHandler)

		// Act
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/UpdateDefinition/abc", nil))

		// Assert
		require.Len(t, recorder.requests, 1)
		assert.Equal(t, recordedRequest{"PUT", "/UpdateDefinition/{id}", "200"}, recorder.requests[0])
	})
}
