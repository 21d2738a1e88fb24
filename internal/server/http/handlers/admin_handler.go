package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/server/http/dto"
	"github.com/campus-canteen/canteen/internal/server/http/middleware"
)

// AdminHandler processes the counter-side endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.facade.AdminLogin(req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid password"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "login failed"})
		return
	}

	middleware.SetAdminCookie(c, token)
	c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}

// Lookup handles GET /api/admin/orders/:token.
func (h *AdminHandler) Lookup(c *gin.Context) {
	order, err := h.facade.AdminLookup(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "invalid or fake token"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Complete handles POST /api/admin/orders/:token/complete.
func (h *AdminHandler) Complete(c *gin.Context) {
	record, err := h.facade.CompleteOrder(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "invalid or fake token"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to complete order"})
		return
	}
	c.JSON(http.StatusOK, toCompletedResponse(*record))
}

// Completed handles GET /api/admin/completed.
func (h *AdminHandler) Completed(c *gin.Context) {
	records, err := h.facade.CompletedOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load journal"})
		return
	}

	response := make([]dto.CompletedOrderResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toCompletedResponse(record))
	}
	c.JSON(http.StatusOK, response)
}
