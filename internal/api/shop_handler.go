package api

import (
	"errors"
	"net/http"

	"gymsphere/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ShopHandler holds the shop and user service dependencies.
type ShopHandler struct {
	shopService service.ShopService
	userService service.UserService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(shopService service.ShopService, userService service.UserService) *ShopHandler {
	return &ShopHandler{shopService: shopService, userService: userService}
}

// Recommend returns goal-aligned products for the authenticated user.
// An explicit ?goal= query overrides the profile goal.
func (h *ShopHandler) Recommend(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	goal := c.Query("goal")
	if goal == "" {
		user, err := h.userService.GetProfile(c.Request.Context(), ownerID)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		goal = user.Goal
	}

	products, err := h.shopService.Recommend(c.Request.Context(), goal)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load recommendations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
