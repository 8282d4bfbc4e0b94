package handler

import (
	"errors"
	"net/http"
	"time"

	"trainer-api/internal/store"
	"trainer-api/pkg/logger"
	"trainer-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ScanQRRequest defines the structure for QR scan requests
type ScanQRRequest struct {
	TgID      int64  `json:"tg_id"`
	QRCode    string `json:"qr_code"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// ScanQR handles a decoded QR payload: it upserts the user and activates the
// matching product for them. Re-scanning an already activated product is a
// no-op returning the same product.
func (h *Handler) ScanQR(c echo.Context) error {
	log := logger.FromContext(c)

	var req ScanQRRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse scan request", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}

	log.Info("QR scan request",
		zap.Int64("tg_id", req.TgID),
		zap.String("qr_code", req.QRCode))

	user, err := h.store.UpsertUser(req.TgID, req.FirstName, req.Username)
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", req.TgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	defer prometheus.TrackDBOperation("activate_product")(time.Now())
	product, created, err := h.store.ActivateProduct(user.ID, req.QRCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Unknown QR code", zap.String("qr_code", req.QRCode))
			prometheus.RecordScan(prometheus.ScanNotFound)
			return detail(c, http.StatusNotFound, "QR code not found")
		}
		log.Error("Failed to activate product",
			zap.Uint("user_id", user.ID),
			zap.String("qr_code", req.QRCode),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to activate product")
	}

	if created {
		prometheus.RecordScan(prometheus.ScanActivated)
		prometheus.ActivationsCounter.Inc()
	} else {
		prometheus.RecordScan(prometheus.ScanAlreadyActive)
	}

	log.Info("Product activated",
		zap.Uint("user_id", user.ID),
		zap.Uint("product_id", product.ID),
		zap.Bool("new_activation", created))
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"product": echo.Map{
			"id":          product.ID,
			"name":        product.Name,
			"description": product.Description,
			"image_url":   product.ImageURL,
		},
	})
}
