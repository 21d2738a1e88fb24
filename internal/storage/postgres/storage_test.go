package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectationsMet(t *testing.T, mock pgxmockv3.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitSchemaCreatesUniqueConstraints(t *testing.T) {
	storage, mock := newMockStorage(t)

	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS menu_items",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS completed_orders",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_status_created").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	expectationsMet(t, mock)
}

func orderItemsJSON(t *testing.T, items []model.OrderItem) []byte {
	t.Helper()
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal items: %v", err)
	}
	return data
}

func TestOrderCreateInsertsNewOrder(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	items := []model.OrderItem{{Name: "Samosa", Price: 15, Qty: 2}, {Name: "Tea", Price: 10, Qty: 1}}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("cs_1", "T4821", model.OrderStatusPendingUpload, orderItemsJSON(t, items), float64(40)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	order, created, err := storage.Orders().Create(context.Background(), &model.Order{
		SessionID: "cs_1",
		Token:     "T4821",
		Status:    model.OrderStatusPendingUpload,
		Items:     items,
		Total:     40,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created {
		t.Fatal("expected order to be newly created")
	}
	if order.ID != 1 || order.Token != "T4821" {
		t.Fatalf("unexpected order %+v", order)
	}
	expectationsMet(t, mock)
}

func orderRows(order model.Order, items []byte) *pgxmockv3.Rows {
	return pgxmockv3.NewRows([]string{
		"id", "session_id", "token", "status", "items", "total",
		"qr_content", "payment_screenshot", "created_at", "updated_at",
	}).AddRow(order.ID, order.SessionID, order.Token, order.Status, items, order.Total,
		order.QRContent, order.PaymentScreenshot, order.CreatedAt, order.UpdatedAt)
}

func TestOrderCreateIsIdempotentPerSession(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	items := []model.OrderItem{{Name: "Tea", Price: 10, Qty: 1}}
	existing := model.Order{
		ID: 7, SessionID: "cs_1", Token: "T1111", Status: model.OrderStatusPendingUpload,
		Total: 10, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("cs_1", "T2222", model.OrderStatusPendingUpload, orderItemsJSON(t, items), float64(10)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM orders WHERE session_id").
		WithArgs("cs_1").
		WillReturnRows(orderRows(existing, orderItemsJSON(t, items)))

	order, created, err := storage.Orders().Create(context.Background(), &model.Order{
		SessionID: "cs_1", Token: "T2222", Status: model.OrderStatusPendingUpload, Items: items, Total: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created {
		t.Fatal("expected existing order, not a new one")
	}
	if order.Token != "T1111" {
		t.Fatalf("expected original token to survive, got %q", order.Token)
	}
	expectationsMet(t, mock)
}

func TestOrderCreateReportsTokenCollision(t *testing.T) {
	storage, mock := newMockStorage(t)
	items := []model.OrderItem{{Name: "Tea", Price: 10, Qty: 1}}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("cs_2", "T1111", model.OrderStatusPendingUpload, orderItemsJSON(t, items), float64(10)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_token_key"})

	_, _, err := storage.Orders().Create(context.Background(), &model.Order{
		SessionID: "cs_2", Token: "T1111", Status: model.OrderStatusPendingUpload, Items: items, Total: 10,
	})
	if !errors.Is(err, domainErrors.ErrTokenTaken) {
		t.Fatalf("expected ErrTokenTaken, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestOrderGetByTokenNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT .+ FROM orders WHERE token").
		WithArgs("T4821").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Orders().GetByToken(context.Background(), "T4821")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestOrderGetBySessionUnmarshalsItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	items := []model.OrderItem{{Name: "Samosa", Price: 15, Qty: 2}}
	stored := model.Order{
		ID: 3, SessionID: "cs_1", Token: "T9000", Status: model.OrderStatusUploaded,
		Total: 30, QRContent: "paymentproof:cs_1_t9000", PaymentScreenshot: "http://host/up/1.png",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("SELECT .+ FROM orders WHERE session_id").
		WithArgs("cs_1").
		WillReturnRows(orderRows(stored, orderItemsJSON(t, items)))

	order, err := storage.Orders().GetBySession(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].Name != "Samosa" {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	if order.Status != model.OrderStatusUploaded {
		t.Fatalf("unexpected status %s", order.Status)
	}
	expectationsMet(t, mock)
}

func TestQRContentExists(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("paymentproof:cs_1_t1234").
		WillReturnRows(pgxmockv3.NewRows([]string{"exists"}).AddRow(true))

	exists, err := storage.Orders().QRContentExists(context.Background(), "paymentproof:cs_1_t1234")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected qr content to exist")
	}
	expectationsMet(t, mock)
}

func TestAttachProofAdvancesStatus(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	items := []model.OrderItem{{Name: "Tea", Price: 10, Qty: 1}}
	updated := model.Order{
		ID: 4, SessionID: "cs_1", Token: "T1234", Status: model.OrderStatusUploaded,
		Total: 10, QRContent: "paymentproof:cs_1_t1234", PaymentScreenshot: "http://host/up/a.png",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("UPDATE orders").
		WithArgs("cs_1", "paymentproof:cs_1_t1234", "http://host/up/a.png",
			model.OrderStatusUploaded, model.OrderStatusPendingUpload).
		WillReturnRows(orderRows(updated, orderItemsJSON(t, items)))

	order, err := storage.Orders().AttachProof(context.Background(), "cs_1", "paymentproof:cs_1_t1234", "http://host/up/a.png")
	if err != nil {
		t.Fatalf("attach proof: %v", err)
	}
	if order.Status != model.OrderStatusUploaded {
		t.Fatalf("expected uploaded status, got %s", order.Status)
	}
	expectationsMet(t, mock)
}

func TestAttachProofRejectsDuplicateContent(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE orders").
		WithArgs("cs_2", "paymentproof:cs_1_t1234", "http://host/up/b.png",
			model.OrderStatusUploaded, model.OrderStatusPendingUpload).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "orders_qr_content_key"})

	_, err := storage.Orders().AttachProof(context.Background(), "cs_2", "paymentproof:cs_1_t1234", "http://host/up/b.png")
	if !errors.Is(err, domainErrors.ErrDuplicateProof) {
		t.Fatalf("expected ErrDuplicateProof, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAttachProofMissingOrder(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("UPDATE orders").
		WithArgs("cs_missing", "qr", "url", model.OrderStatusUploaded, model.OrderStatusPendingUpload).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM orders WHERE session_id").
		WithArgs("cs_missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := storage.Orders().AttachProof(context.Background(), "cs_missing", "qr", "url")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAttachProofTerminalOrder(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	terminal := model.Order{
		ID: 5, SessionID: "cs_done", Token: "T5555", Status: model.OrderStatusUploaded,
		Total: 10, QRContent: "old", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("UPDATE orders").
		WithArgs("cs_done", "qr", "url", model.OrderStatusUploaded, model.OrderStatusPendingUpload).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM orders WHERE session_id").
		WithArgs("cs_done").
		WillReturnRows(orderRows(terminal, orderItemsJSON(t, nil)))

	_, err := storage.Orders().AttachProof(context.Background(), "cs_done", "qr", "url")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestListStalePendingUpload(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	cutoff := now.Add(-30 * time.Minute)
	stale := model.Order{
		ID: 6, SessionID: "cs_old", Token: "T6666", Status: model.OrderStatusPendingUpload,
		Total: 25, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
	}

	mock.ExpectQuery("SELECT .+ FROM orders").
		WithArgs(model.OrderStatusPendingUpload, cutoff, 16).
		WillReturnRows(orderRows(stale, orderItemsJSON(t, nil)))

	orders, err := storage.Orders().ListStalePendingUpload(context.Background(), cutoff, 16)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 || orders[0].SessionID != "cs_old" {
		t.Fatalf("unexpected orders %+v", orders)
	}
	expectationsMet(t, mock)
}

func TestMenuUpsertAndList(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectQuery("INSERT INTO menu_items").
		WithArgs("item-1", "Samosa", float64(15), 20).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow("item-1"))

	item, err := storage.Menu().Upsert(context.Background(), &model.MenuItem{
		ID: "item-1", Name: "Samosa", Price: 15, Available: 20,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if item.ID != "item-1" {
		t.Fatalf("unexpected id %q", item.ID)
	}

	mock.ExpectQuery("SELECT id, name, price, available FROM menu_items").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "name", "price", "available"}).
			AddRow("item-1", "Samosa", float64(15), 20).
			AddRow("item-2", "Tea", float64(10), 50))

	items, err := storage.Menu().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[1].Name != "Tea" {
		t.Fatalf("unexpected items %+v", items)
	}
	expectationsMet(t, mock)
}

func TestMenuDecrementAvailability(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE menu_items").
		WithArgs("Samosa", 2).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))

	if err := storage.Menu().DecrementAvailability(context.Background(), "Samosa", 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	expectationsMet(t, mock)
}

func TestCompletedOrderCreateAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	now := time.Now()
	items := []model.OrderItem{{Name: "Tea", Price: 10, Qty: 1}}

	mock.ExpectQuery("INSERT INTO completed_orders").
		WithArgs(int64(4), "T1234", orderItemsJSON(t, items), float64(10)).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "completed_at"}).AddRow(int64(1), now))

	rec, err := storage.CompletedOrders().Create(context.Background(), &model.CompletedOrder{
		OrderID: 4, Token: "T1234", Items: items, Total: 10,
	})
	if err != nil {
		t.Fatalf("create completed: %v", err)
	}
	if rec.ID != 1 || rec.CompletedAt.IsZero() {
		t.Fatalf("unexpected record %+v", rec)
	}

	mock.ExpectQuery("SELECT id, order_id, token, items, total, completed_at").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "order_id", "token", "items", "total", "completed_at"}).
			AddRow(int64(1), int64(4), "T1234", orderItemsJSON(t, items), float64(10), now))

	records, err := storage.CompletedOrders().List(context.Background())
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(records) != 1 || records[0].Token != "T1234" {
		t.Fatalf("unexpected records %+v", records)
	}
	expectationsMet(t, mock)
}

func TestHealthCheckPingsPool(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectPing()

	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}
	expectationsMet(t, mock)
}
