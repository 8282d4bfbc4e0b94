package handler

import (
	"net/http"
	"strconv"

	"trainer-api/internal/store"

	"github.com/labstack/echo/v4"
)

// Handler bundles the HTTP handlers around the data access layer.
type Handler struct {
	store *store.Store
}

// New returns a Handler backed by s.
func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// Root handles the greeting endpoint
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Trainer Mini App API"})
}

// Health handles the health check endpoint
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// detail writes the error body shape shared by all endpoints.
func detail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"detail": message})
}

func parseTgID(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

func parseID(value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	return uint(id), err
}
