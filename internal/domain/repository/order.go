package repository

import (
	"context"
	"time"

	"github.com/campus-canteen/canteen/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// The store enforces uniqueness of session_id, token and qr_content; the
// check-then-insert critical sections of payment verification and proof
// upload rely on those constraints, not on application locking.
type OrderRepository interface {
	// Create inserts the order. Returns the stored order and whether it was
	// newly created: an existing order for the same session is returned with
	// created=false (idempotent verification). A token collision returns
	// ErrTokenTaken so the caller can retry with a fresh token.
	Create(ctx context.Context, order *model.Order) (*model.Order, bool, error)
	GetBySession(ctx context.Context, sessionID string) (*model.Order, error)
	GetByToken(ctx context.Context, token string) (*model.Order, error)
	// QRContentExists reports whether any order has consumed the proof payload.
	QRContentExists(ctx context.Context, qrContent string) (bool, error)
	// AttachProof sets qr_content and payment_screenshot on the pending-upload
	// order for the session and advances it to the uploaded status, atomically.
	// Returns ErrDuplicateProof if the payload is already attached elsewhere,
	// ErrAlreadyExists if the order left the pending-upload state.
	AttachProof(ctx context.Context, sessionID, qrContent, screenshotURL string) (*model.Order, error)
	// ListStalePendingUpload returns orders still awaiting proof upload that
	// were created before the cutoff.
	ListStalePendingUpload(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
