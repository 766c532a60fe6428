package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderapi/internal/middleware"
	"orderapi/internal/usecase"
	"orderapi/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(method, target, nil), rec), rec
}

func TestErrorWriter_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expose   bool
		wantCode int
		wantBody string
	}{
		{
			name:     "not found",
			err:      fmt.Errorf("wrapped: %w", usecase.NewNotFoundError("product", 7)),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"product 7 not found"}`,
		},
		{
			name:     "validation",
			err:      usecase.NewValidationError("name", "name is required"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"errors":[{"field":"name","message":"name is required"}]}`,
		},
		{
			name:     "internal hidden",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
		{
			name:     "internal exposed",
			err:      errors.New("pq: connection refused"),
			expose:   true,
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"pq: connection refused"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/api/product/7")
			w := NewErrorWriter(logger.Nop(), tt.expose)

			require.NoError(t, w.Write(c, tt.err))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestErrorWriter_LogsInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogLogger(logger.Options{Format: "json", Output: &buf})

	c, _ := newContext(http.MethodDelete, "/api/order/3")
	c.Set(middleware.CtxRequestIDKey, "req-1")
	require.NoError(t, NewErrorWriter(log, false).Write(c, errors.New("boom")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "DELETE /api/order/3 failed", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "req-1", line["request_id"])
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/")
			c.SetParamNames("id")
			c.SetParamValues(tt.raw)

			id, ok := parseID(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestCreated_SetsLocation(t *testing.T) {
	c, rec := newContext(http.MethodPost, "/api/client/")
	require.NoError(t, created(c, 42, map[string]int64{"id": 42}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/client/42", rec.Header().Get(echo.HeaderLocation))
}
