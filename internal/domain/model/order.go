package model

import "time"

// OrderStatus describes the order lifecycle.
//
// Orders are born verified: checkout never persists anything, so the only
// entry point into the store is a session the payment processor reports as
// paid. PendingPayment is representable for records migrated from the
// legacy store but is never produced here.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusPendingUpload  OrderStatus = "PAYMENT_VERIFIED_PENDING_UPLOAD"
	OrderStatusUploaded       OrderStatus = "PAYMENT_VERIFIED_AND_UPLOADED"
)

// OrderItem is a purchased line snapshotted onto an order.
type OrderItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// Order is the durable record created once a payment session is verified.
// SessionID and Token are globally unique; QRContent, once set, can never be
// attached to a second order.
type Order struct {
	ID                int64
	SessionID         string
	Token             string
	Status            OrderStatus
	Items             []OrderItem
	Total             float64
	QRContent         string
	PaymentScreenshot string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ItemsTotal sums price*qty over the order items.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return total
}
