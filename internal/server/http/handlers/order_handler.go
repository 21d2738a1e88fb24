package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/server/http/dto"
)

// maxProofSize caps proof screenshot uploads at 8 MiB.
const maxProofSize = 8 << 20

// OrderHandler manages the student-facing order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Verify handles GET /verify-payment/:session_id.
func (h *OrderHandler) Verify(c *gin.Context) {
	sessionID := c.Param("session_id")

	order, paid, err := h.facade.VerifyPayment(c.Request.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, dto.VerifyResponse{Success: false, Error: "payment session not found"})
		case errors.Is(err, domainErrors.ErrVerificationUnavailable):
			c.JSON(http.StatusBadGateway, dto.VerifyResponse{Success: false, Error: "payment verification unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, dto.VerifyResponse{Success: false, Error: "verification failed"})
		}
		return
	}
	if !paid {
		c.JSON(http.StatusOK, dto.VerifyResponse{Success: false})
		return
	}

	response := toOrderResponse(*order)
	c.JSON(http.StatusOK, dto.VerifyResponse{Success: true, Token: order.Token, Order: &response})
}

// Get handles GET /orders/:session_id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.OrderBySession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to load order"})
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// QR handles GET /orders/:session_id/qr.
func (h *OrderHandler) QR(c *gin.Context) {
	png, err := h.facade.ProofQR(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to render QR"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// UploadProof handles POST /orders/:session_id/proof.
func (h *OrderHandler) UploadProof(c *gin.Context) {
	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no proof file uploaded"})
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "proof file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable proof file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unreadable proof file"})
		return
	}

	order, err := h.facade.UploadProof(c.Request.Context(), c.Param("session_id"), fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrImageDecode):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "uploaded file is not a readable image"})
		case errors.Is(err, domainErrors.ErrNoQRFound):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no QR code found in image"})
		case errors.Is(err, domainErrors.ErrDuplicateProof):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "this payment proof was already used"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "a proof is already attached to this order"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to store proof"})
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
