package handler

import (
	"net/http"

	"trainer-api/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetProduct handles retrieving a single product the caller has activated.
// Products outside the caller's activated set are rejected with 403.
func (h *Handler) GetProduct(c echo.Context) error {
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

	products, err := h.store.ListUserProducts(user.ID)
	if err != nil {
		log.Error("Failed to list user products",
			zap.Uint("user_id", user.ID),
			zap.Error(err))
		return detail(c, http.StatusInternalServerError, "failed to load products")
	}

	activated := false
	for _, product := range products {
		if product.ID == productID {
			activated = true
			break
		}
	}
	if !activated {
		log.Warn("No access to product",
			zap.Uint("user_id", user.ID),
			zap.Uint("product_id", productID))
		return detail(c, http.StatusForbidden, "no access to this product")
	}

	for _, product := range products {
		if product.ID == productID {
			log.Info("Product details retrieved",
				zap.Uint("user_id", user.ID),
				zap.Uint("product_id", productID))
			return c.JSON(http.StatusOK, product)
		}
	}

	// Defensive double-check; unreachable unless the list changed underneath us
	return detail(c, http.StatusNotFound, "product not found")
}
