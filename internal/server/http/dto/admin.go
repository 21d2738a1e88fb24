package dto

import "time"

// AdminLoginRequest carries the shared admin password.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLoginResponse carries the issued session token.
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// CompletedOrderResponse is one fulfillment journal entry.
type CompletedOrderResponse struct {
	ID          int64               `json:"id"`
	OrderID     int64               `json:"order_id"`
	Token       string              `json:"token"`
	Items       []OrderItemResponse `json:"items"`
	Total       float64             `json:"total"`
	CompletedAt time.Time           `json:"completed_at"`
}
