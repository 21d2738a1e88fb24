package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/campus-canteen/canteen/internal/adapter/qr"
	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/test"
)

func pendingOrder(sessionID, token string) model.Order {
	return model.Order{
		SessionID: sessionID,
		Token:     token,
		Status:    model.OrderStatusPendingUpload,
		Items:     []model.OrderItem{{Name: "Tea", Price: 10, Qty: 1}},
		Total:     10,
	}
}

func proofImage(t *testing.T, sessionID, token string) []byte {
	t.Helper()
	data, err := qr.EncodePNG(qr.ProofPayload(sessionID, token), 256)
	if err != nil {
		t.Fatalf("encode proof: %v", err)
	}
	return data
}

func TestQRCodeEncodesCanonicalPayload(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Seed(pendingOrder("cs_1", "T4821"))
	uc := NewProofUseCase(orders, &test.ObjectStoreStub{}, discardLogger())

	png, err := uc.QRCode(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("qr code: %v", err)
	}
	payload, err := qr.DecodeImage(png)
	if err != nil {
		t.Fatalf("decode issued qr: %v", err)
	}
	if payload != "PaymentProof:cs_1_T4821" {
		t.Fatalf("unexpected payload %q", payload)
	}
}

func TestQRCodeUnknownSession(t *testing.T) {
	uc := NewProofUseCase(test.NewOrderRepositoryStub(), &test.ObjectStoreStub{}, discardLogger())

	if _, err := uc.QRCode(context.Background(), "cs_missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUploadAttachesProofAndAdvancesStatus(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Seed(pendingOrder("cs_1", "T4821"))
	store := &test.ObjectStoreStub{}
	uc := NewProofUseCase(orders, store, discardLogger())

	order, err := uc.Upload(context.Background(), "cs_1", "proof.png", proofImage(t, "cs_1", "T4821"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if order.Status != model.OrderStatusUploaded {
		t.Fatalf("unexpected status %s", order.Status)
	}
	if order.QRContent != "paymentproof:cs_1_t4821" {
		t.Fatalf("payload must be normalized, got %q", order.QRContent)
	}
	if order.PaymentScreenshot == "" {
		t.Fatal("expected screenshot URL on order")
	}
	if len(store.Saved) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.Saved))
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Seed(pendingOrder("cs_1", "T4821"))
	store := &test.ObjectStoreStub{}
	uc := NewProofUseCase(orders, store, discardLogger())

	_, err := uc.Upload(context.Background(), "cs_1", "notes.txt", []byte("not an image"))
	if !errors.Is(err, domainErrors.ErrImageDecode) {
		t.Fatalf("expected ErrImageDecode, got %v", err)
	}
	if len(store.Saved) != 0 {
		t.Fatal("nothing may be stored for an undecodable upload")
	}
}

func TestUploadRejectsReusedProofBeforeStoring(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	first := pendingOrder("cs_1", "T4821")
	first.Status = model.OrderStatusUploaded
	first.QRContent = "paymentproof:cs_1_t4821"
	orders.Seed(first)
	orders.Seed(pendingOrder("cs_2", "T9999"))
	store := &test.ObjectStoreStub{}
	uc := NewProofUseCase(orders, store, discardLogger())

	_, err := uc.Upload(context.Background(), "cs_2", "proof.png", proofImage(t, "cs_1", "T4821"))
	if !errors.Is(err, domainErrors.ErrDuplicateProof) {
		t.Fatalf("expected ErrDuplicateProof, got %v", err)
	}
	if len(store.Saved) != 0 {
		t.Fatal("duplicate proof must be rejected before the image is stored")
	}
}

func TestUploadCleansUpObjectWhenAttachLosesRace(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Seed(pendingOrder("cs_1", "T4821"))
	orders.AttachProofFn = func(context.Context, string, string, string) (*model.Order, error) {
		return nil, domainErrors.ErrDuplicateProof
	}
	store := &test.ObjectStoreStub{}
	uc := NewProofUseCase(orders, store, discardLogger())

	_, err := uc.Upload(context.Background(), "cs_1", "proof.png", proofImage(t, "cs_1", "T4821"))
	if !errors.Is(err, domainErrors.ErrDuplicateProof) {
		t.Fatalf("expected ErrDuplicateProof, got %v", err)
	}
	if len(store.Removed) != 1 {
		t.Fatalf("expected orphaned object cleanup, removed=%v", store.Removed)
	}
}

func TestUploadSecondProofForSameOrderRejected(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	orders.Seed(pendingOrder("cs_1", "T4821"))
	uc := NewProofUseCase(orders, &test.ObjectStoreStub{}, discardLogger())

	if _, err := uc.Upload(context.Background(), "cs_1", "proof.png", proofImage(t, "cs_1", "T4821")); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	_, err := uc.Upload(context.Background(), "cs_1", "proof.png", proofImage(t, "cs_1", "T4821"))
	if !errors.Is(err, domainErrors.ErrDuplicateProof) {
		t.Fatalf("second upload must be rejected, got %v", err)
	}
}

func TestUploadUnknownSession(t *testing.T) {
	orders := test.NewOrderRepositoryStub()
	uc := NewProofUseCase(orders, &test.ObjectStoreStub{}, discardLogger())

	_, err := uc.Upload(context.Background(), "cs_missing", "proof.png", proofImage(t, "cs_missing", "T0000"))
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
