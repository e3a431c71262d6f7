package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

// DocumentCounter reports how many documents the knowledge base holds.
type DocumentCounter interface {
	Len() int
}

// HealthHandler reports whether the service can answer questions.
type HealthHandler struct {
	corpus DocumentCounter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(corpus DocumentCounter) *HealthHandler {
	return &HealthHandler{corpus: corpus}
}

// HealthGet answers 200 when the knowledge base has documents and 503 otherwise.
func (h *HealthHandler) HealthGet(c echo.Context) error {
	n := h.corpus.Len()
	if n == 0 {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "empty corpus"})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Documents: n})
}
