package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/askby/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countCorpus int

func (c countCorpus) Len() int { return int(c) }

func TestHealthGet(t *testing.T) {
	tests := []struct {
		name       string
		docs       int
		wantStatus int
		wantBody   handlers.HealthResponse
	}{
		{name: "documents loaded", docs: 3, wantStatus: http.StatusOK, wantBody: handlers.HealthResponse{Status: "ok", Documents: 3}},
		{name: "empty corpus", docs: 0, wantStatus: http.StatusServiceUnavailable, wantBody: handlers.HealthResponse{Status: "empty corpus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := handlers.NewHealthHandler(countCorpus(tt.docs))
			e.GET("/health", h.HealthGet)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got handlers.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestCustomValidator(t *testing.T) {
	type req struct {
		Question string `validate:"required,max=5"`
	}
	v := handlers.NewValidator()

	assert.NoError(t, v.Validate(&req{Question: "hi"}))
	assert.Error(t, v.Validate(&req{}))
	assert.Error(t, v.Validate(&req{Question: "too long"}))
}
