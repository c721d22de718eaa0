package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Aviraj0403/restro-back/internal/domain/errors"
	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Save handles PUT /api/cart.
func (h *CartHandler) Save(c *gin.Context) {
	var req dto.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	cart, err := h.facade.SaveCart(c.Request.Context(), CurrentUserID(c), req.Items)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidQuantity) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearCart(c.Request.Context(), CurrentUserID(c)); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func toCartResponse(cart *model.Cart) dto.CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return dto.CartResponse{Items: items, UpdatedAt: cart.UpdatedAt}
}
