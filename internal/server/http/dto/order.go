package dto

import "time"

// OrderItemResponse is one purchased line on an order.
type OrderItemResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	SessionID         string              `json:"session_id"`
	Token             string              `json:"token"`
	Status            string              `json:"status"`
	Items             []OrderItemResponse `json:"items"`
	Total             float64             `json:"total"`
	PaymentScreenshot string              `json:"payment_screenshot,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// VerifyResponse reports the outcome of payment verification.
type VerifyResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token,omitempty"`
	Order   *OrderResponse `json:"order,omitempty"`
	Error   string         `json:"error,omitempty"`
}
