package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/burhaniassociates/storefront/pkg/errors"
	"github.com/burhaniassociates/storefront/pkg/logger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- WriteJSON / WriteData ---

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"name": "Clamptek"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Clamptek"}`, rec.Body.String())
}

func TestWriteData_Unavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, []string{}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":[],"meta":{"unavailable":true}}`, rec.Body.String())
}

func TestWriteData_OmitsMetaWhenAvailable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, []string{"a"}, false)

	assert.Empty(t, rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":["a"]}`, rec.Body.String())
}

// --- WriteError ---

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"app error", apperrors.NotFound("product", "p-1"), http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("get product: %w", apperrors.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"invalid input", fmt.Errorf("%w: bad page", apperrors.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
		{"unavailable", fmt.Errorf("list brands: %w", apperrors.ErrServiceUnavail), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p-1", nil)

			WriteError(rec, req, tt.err, testLogger())

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.Nil(t, resp.Data)
			assert.Nil(t, resp.Meta)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestWriteErrorMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p-1", nil)

	WriteErrorMeta(rec, req, apperrors.NotFound("product", "p-1"), &Meta{Unavailable: true}, testLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Meta.Unavailable)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWriteError_LogsServerErrorsOnly(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/brands", nil)

	WriteError(httptest.NewRecorder(), req, apperrors.NotFound("brand", "x"), l)
	assert.Zero(t, buf.Len())

	WriteError(httptest.NewRecorder(), req, errors.New("db exploded"), l)
	assert.Contains(t, buf.String(), "db exploded")
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	ctx := logger.WithCorrelationID(context.Background(), "corr-42")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/x", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, apperrors.ErrNotFound, testLogger())

	assert.Equal(t, "corr-42", decode(t, rec).Error.RequestID)
}

func TestWriteError_NoCorrelationID_OmitsRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), apperrors.ErrNotFound, testLogger())

	assert.NotContains(t, rec.Body.String(), "request_id")
}
