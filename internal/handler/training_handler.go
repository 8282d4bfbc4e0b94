package handler

import (
	"errors"
	"net/http"

	"trainer-api/internal/store"
	"trainer-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetTrainingPrograms handles retrieving the training programs of a product
// the caller has activated, each program carrying its videos in display order.
func (h *Handler) GetTrainingPrograms(c echo.Context) error {
	log := logger.FromContext(c)

	productID, err := parseID(c.Param("product_id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid product_id")
	}
	tgID, err := parseTgID(c.QueryParam("tg_id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid tg_id")
	}

	user, err := h.store.UpsertUser(tgID, "", "")
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", tgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	ok, err := h.store.HasProductAccess(user.ID, productID)
	if err != nil {
		log.Error("Failed to check product access",
			zap.Uint("user_id", user.ID),
			zap.Uint("product_id", productID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to check access")
	}
	if !ok {
		log.Warn("No access to product",
			zap.Uint("user_id", user.ID),
			zap.Uint("product_id", productID))
		return detail(c, http.StatusForbidden, "no access to this product")
	}

	programs, err := h.store.ListPrograms(productID)
	if err != nil {
		log.Error("Failed to list training programs",
			zap.Uint("product_id", productID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load programs")
	}

	log.Info("Training programs retrieved",
		zap.Uint("product_id", productID),
		zap.Int("count", len(programs)))
	return c.JSON(http.StatusOK, echo.Map{
		"product_id": productID,
		"programs":   programs,
	})
}

// GetTrainingVideos handles retrieving the videos of a training program. The
// caller must have activated the program's owning product.
func (h *Handler) GetTrainingVideos(c echo.Context) error {
	log := logger.FromContext(c)

	programID, err := parseID(c.Param("program_id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid program_id")
	}
	tgID, err := parseTgID(c.QueryParam("tg_id"))
	if err != nil {
		return detail(c, http.StatusBadRequest, "invalid tg_id")
	}

	user, err := h.store.UpsertUser(tgID, "", "")
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", tgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	productID, err := h.store.ProductIDForProgram(programID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("Program not found", zap.Uint("program_id", programID))
			return detail(c, http.StatusNotFound, "program not found")
		}
		log.Error("Failed to resolve program",
			zap.Uint("program_id", programID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load program")
	}

	ok, err := h.store.HasProductAccess(user.ID, productID)
	if err != nil {
		log.Error("Failed to check product access",
			zap.Uint("user_id", user.ID),
			zap.Uint("product_id", productID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to check access")
	}
	if !ok {
		log.Warn("No access to program's product",
			zap.Uint("user_id", user.ID),
			zap.Uint("program_id", programID),
			zap.Uint("product_id", productID))
		return detail(c, http.StatusForbidden, "no access to this program")
	}

	videos, err := h.store.ListProgramVideos(programID)
	if err != nil {
		log.Error("Failed to list program videos",
			zap.Uint("program_id", programID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load videos")
	}

	log.Info("Training videos retrieved",
		zap.Uint("program_id", programID),
		zap.Int("count", len(videos)))
	return c.JSON(http.StatusOK, echo.Map{
		"program_id": programID,
		"videos":     videos,
	})
}
