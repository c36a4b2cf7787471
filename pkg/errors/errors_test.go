package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		public string
	}{
		{"validation", NewValidationError("Invalid data in request body."), http.StatusBadRequest, "Invalid data in request body."},
		{"not found", NewNotFoundError("No definitions found."), http.StatusNotFound, "No definitions found."},
		{"conflict", NewConflictError("A definition for Serendipity already exists."), http.StatusConflict, "A definition for Serendipity already exists."},
		{"unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized, "Unauthorized"},
		{"database", NewDatabaseError("scan definitions", errors.New("throttled")), http.StatusInternalServerError, DatabaseErrorMessage},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, InternalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.public, tt.err.PublicMessage())
		})
	}
}

func TestAppError_Chain(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(NewDatabaseError("get item", cause), "load definition")

	assert.True(t, IsDatabase(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "load definition")

	plain := Wrap(errors.New("oops"), "decode")
	assert.True(t, IsType(plain, ErrorTypeInternal))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestErrorHandler_Handle(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)

	t.Run("Should expose client error messages", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/GetDefinitionByWord", nil)

		handler.Handle(rec, req, NewNotFoundError("Definition not found."))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Definition not found.", body.Error)
	})

	t.Run("Should hide database causes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/GetAllDefinitions", nil)

		handler.Handle(rec, req, NewDatabaseError("scan", errors.New("secret table arn")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.Contains(t, rec.Body.String(), DatabaseErrorMessage)
	})

	t.Run("Should treat unknown errors as internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		handler.Handle(rec, req, errors.New("nil pointer somewhere"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), InternalErrorMessage)
	})
}

func TestErrorHandler_MiddlewareRecoversPanics(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), true)
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("unexpected")
	})

	rec := httptest.NewRecorder()
	handler.Middleware(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An internal server error occurred."}`, rec.Body.String())
}
