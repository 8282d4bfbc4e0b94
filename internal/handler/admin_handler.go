package handler

import (
	"errors"
	"net/http"

	"trainer-api/internal/store"
	"trainer-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	Name        string `json:"name"`
	QRCode      string `json:"qr_code"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// ProgramRequest defines the structure for training program creation requests
type ProgramRequest struct {
	ProductID   uint   `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

// VideoRequest defines the structure for training video creation requests
type VideoRequest struct {
	ProgramID       uint   `json:"program_id"`
	Title           string `json:"title"`
	YoutubeURL      string `json:"youtube_url"`
	Description     string `json:"description"`
	OrderIndex      int    `json:"order_index"`
	DurationSeconds *int   `json:"duration_seconds"`
}

// SupportStatusRequest defines the structure for support status transitions
type SupportStatusRequest struct {
	Status string `json:"status"`
}

// AdminCreateProduct handles creating a new product
func (h *Handler) AdminCreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}
	if req.Name == "" || req.QRCode == "" {
		return detail(c, http.StatusBadRequest, "name and qr_code are required")
	}

	product, err := h.store.CreateProduct(req.Name, req.QRCode, req.Description, req.ImageURL)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateQRCode) {
			log.Warn("Product with this QR code already exists",
				zap.String("qr_code", req.QRCode))
			return detail(c, http.StatusConflict, "product with this QR code already exists")
		}
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to create product")
	}

	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"product_id": product.ID,
	})
}

// AdminCreateProgram handles creating a new training program
func (h *Handler) AdminCreateProgram(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProgramRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}
	if req.ProductID == 0 || req.Title == "" {
		return detail(c, http.StatusBadRequest, "product_id and title are required")
	}

	program, err := h.store.CreateProgram(req.ProductID, req.Title, req.Description, req.OrderIndex)
	if err != nil {
		log.Error("Failed to create training program",
			zap.Uint("product_id", req.ProductID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to create program")
	}

	log.Info("Training program created",
		zap.Uint("program_id", program.ID),
		zap.Uint("product_id", program.ProductID))
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"program_id": program.ID,
	})
}

// AdminCreateVideo handles creating a new training video
func (h *Handler) AdminCreateVideo(c echo.Context) error {
	log := logger.FromContext(c)

	var req VideoRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}
	if req.ProgramID == 0 || req.Title == "" || req.YoutubeURL == "" {
		return detail(c, http.StatusBadRequest, "program_id, title and youtube_url are required")
	}

	video, err := h.store.CreateVideo(req.ProgramID, req.Title, req.YoutubeURL,
		req.Description, req.OrderIndex, req.DurationSeconds)
	if err != nil {
		log.Error("Failed to create training video",
			zap.Uint("program_id", req.ProgramID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to create video")
	}

	log.Info("Training video created",
		zap.Uint("video_id", video.ID),
		zap.Uint("program_id", video.ProgramID))
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "success",
		"video_id": video.ID,
	})
}

// AdminUpdateSupportStatus handles moving a support request through its
// lifecycle (new, in_progress, resolved).
func (h *Handler) AdminUpdateSupportStatus(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid request id")
	}

	var req SupportStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return detail(c, http.StatusBadRequest, "invalid request data")
	}

	request, err := h.store.UpdateSupportRequestStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			return detail(c, http.StatusBadRequest, "invalid status")
		case errors.Is(err, store.ErrNotFound):
			return detail(c, http.StatusNotFound, "support request not found")
		}
		log.Error("Failed to update support request status",
			zap.Uint("request_id", id),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to update status")
	}

	log.Info("Support request status updated",
		zap.Uint("request_id", request.ID),
		zap.String("status", request.Status))
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "success",
		"request_id": request.ID,
		"new_status": request.Status,
	})
}
