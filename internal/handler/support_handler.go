package handler

import (
	"net/http"

	"trainer-api/pkg/logger"
	"trainer-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupportRequestInput defines the structure for support submissions
type SupportRequestInput struct {
	TgID      int64  `json:"tg_id"`
	Message   string `json:"message"`
	ProductID *uint  `json:"product_id"`
}

// CreateSupportRequest handles submitting a support message
func (h *Handler) CreateSupportRequest(c echo.Context) error {
	log := logger.FromContext(c)

	var req SupportRequestInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse support request", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}
	if req.Message == "" {
		return detail(c, http.StatusBadRequest, "message must not be empty")
	}

	user, err := h.store.UpsertUser(req.TgID, "", "")
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", req.TgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	request, err := h.store.CreateSupportRequest(user.ID, req.Message, req.ProductID)
	if err != nil {
		log.Error("Failed to create support request",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to create support request")
	}

	prometheus.SupportRequestsCounter.Inc()
	log.Info("Support request created",
		zap.Uint("user_id", user.ID),
		zap.Uint("request_id", request.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"request_id": request.ID,
		"message":    "Your request has been received. A consultant will contact you shortly.",
	})
}

// GetSupportRequests handles retrieving the caller's support history,
// most recent first.
func (h *Handler) GetSupportRequests(c echo.Context) error {
	log := logger.FromContext(c)

	tgID, err := parseTgID(c.Param("tg_id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid tg_id")
	}

	user, err := h.store.UpsertUser(tgID, "", "")
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", tgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	requests, err := h.store.ListSupportRequests(user.ID)
	if err != nil {
		log.Error("Failed to list support requests",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load support requests")
	}

	log.Info("Support requests retrieved",
		zap.Uint("user_id", user.ID),
		zap.Int("count", len(requests)))
	return c.JSON(http.StatusOK, echo.Map{
		"requests": requests,
	})
}
