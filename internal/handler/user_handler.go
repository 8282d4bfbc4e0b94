package handler

import (
	"net/http"

	"trainer-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetUser handles retrieving a user together with their activated products.
// The user row is created lazily on first contact; there is no separate
// registration step.
func (h *Handler) GetUser(c echo.Context) error {
	log := logger.FromContext(c)

	tgID, err := parseTgID(c.Param("tg_id"))
	if err != nil {
		log.Warn("Invalid tg_id path parameter", zap.String("tg_id", c.Param("tg_id")))
		return detail(c, http.StatusBadRequest, "invalid tg_id")
	}

	user, err := h.store.UpsertUser(tgID, "", "")
	if err != nil {
		log.Error("Failed to upsert user", zap.Int64("tg_id", tgID), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load user")
	}

	products, err := h.store.ListUserProducts(user.ID)
	if err != nil {
		log.Error("Failed to list user products",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load products")
	}

	log.Info("User info retrieved",
		zap.Int64("tg_id", tgID),
		zap.Int("products", len(products)))
	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":         user.ID,
			"tg_id":      user.TgID,
			"first_name": user.FirstName,
			"username":   user.Username,
		},
		"products": products,
	})
}
