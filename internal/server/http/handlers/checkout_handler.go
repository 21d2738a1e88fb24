package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/server/http/dto"
)

// CheckoutHandler opens payment sessions for carts.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /create-checkout-session.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	lines := make([]model.CartLine, 0, len(req.Cart))
	for _, item := range req.Cart {
		lines = append(lines, model.CartLine{ItemID: item.ID, Name: item.Name, Price: item.Price, Qty: item.Qty})
	}

	url, err := h.facade.CreateCheckout(c.Request.Context(), lines)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCart) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "cart is empty or invalid"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{URL: url})
}
