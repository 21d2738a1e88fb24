package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/campus-canteen/canteen/internal/adapter/qr"
	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/domain/repository"
	"github.com/campus-canteen/canteen/internal/storage/objectstore"
)

const proofQRSize = 256

// ProofUseCase issues proof QR codes and ingests proof screenshots.
type ProofUseCase struct {
	orders repository.OrderRepository
	store  objectstore.Store
	logger *slog.Logger
}

// NewProofUseCase constructs ProofUseCase.
func NewProofUseCase(orders repository.OrderRepository, store objectstore.Store, logger *slog.Logger) *ProofUseCase {
	return &ProofUseCase{orders: orders, store: store, logger: logger}
}

// QRCode renders the canonical proof payload for the order as a PNG.
func (u *ProofUseCase) QRCode(ctx context.Context, sessionID string) ([]byte, error) {
	order, err := u.orders.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return qr.EncodePNG(qr.ProofPayload(order.SessionID, order.Token), proofQRSize)
}

// Upload runs the proof pipeline: decode the image, scan it for a QR
// payload, normalize the payload, reject already-used proofs, store the
// image and attach it to the order. The order is only mutated by the final
// step, so any earlier failure leaves it untouched.
func (u *ProofUseCase) Upload(ctx context.Context, sessionID, filename string, data []byte) (*model.Order, error) {
	payload, err := qr.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	qrContent := qr.NormalizeContent(payload)

	// Early probe keeps obviously duplicate proofs from ever reaching the
	// object store; the UNIQUE constraint re-checks at attach time.
	exists, err := u.orders.QRContentExists(ctx, qrContent)
	if err != nil {
		return nil, err
	}
	if exists {
		u.logger.Warn("duplicate payment proof rejected", "session_id", sessionID)
		return nil, domainErrors.ErrDuplicateProof
	}

	screenshotURL, err := u.store.Save(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.AttachProof(ctx, sessionID, qrContent, screenshotURL)
	if err != nil {
		if removeErr := u.store.Remove(ctx, screenshotURL); removeErr != nil {
			u.logger.Warn("failed to clean up orphaned proof image", "url", screenshotURL, "error", removeErr)
		}
		if errors.Is(err, domainErrors.ErrDuplicateProof) {
			u.logger.Warn("duplicate payment proof rejected at attach", "session_id", sessionID)
		}
		return nil, err
	}

	u.logger.Info("payment proof attached", "session_id", sessionID, "token", order.Token)
	return order, nil
}
