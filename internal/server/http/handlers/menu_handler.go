package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-canteen/canteen/internal/server/http/dto"
)

// MenuHandler serves the menu and ingests admin menu documents.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// List handles GET /menu.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load menu"})
		return
	}

	response := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, dto.MenuItemResponse{
			ID: item.ID, Name: item.Name, Price: item.Price, Available: item.Available,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Ingest handles POST /api/admin/menu.
func (h *MenuHandler) Ingest(c *gin.Context) {
	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid menu document"})
		return
	}

	item, err := h.facade.IngestMenuDoc(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to store menu item"})
		return
	}
	c.JSON(http.StatusOK, dto.MenuItemResponse{
		ID: item.ID, Name: item.Name, Price: item.Price, Available: item.Available,
	})
}
