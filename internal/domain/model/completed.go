package model

import "time"

// CompletedOrder is an append-only fulfillment record written when the
// admin confirms delivery at the counter.
type CompletedOrder struct {
	ID          int64
	OrderID     int64
	Token       string
	Items       []OrderItem
	Total       float64
	CompletedAt time.Time
}
