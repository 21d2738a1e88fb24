package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/domain/repository"
)

// DB is the subset of pgxpool.Pool the storage layer uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
//
// The orders table carries UNIQUE constraints on session_id, token and
// qr_content: idempotent verification, token collision retry and duplicate
// proof rejection all lean on the store, not on application locks.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type menuRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type completedOrderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("storage schema ready")

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Menu() repository.MenuRepository {
	return &menuRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) CompletedOrders() repository.CompletedOrderRepository {
	return &completedOrderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            available INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT menu_items_name_key UNIQUE (name)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            token TEXT NOT NULL,
            status TEXT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            qr_content TEXT,
            payment_screenshot TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CONSTRAINT orders_session_key UNIQUE (session_id),
            CONSTRAINT orders_token_key UNIQUE (token),
            CONSTRAINT orders_qr_content_key UNIQUE (qr_content)
        )`,
		`CREATE TABLE IF NOT EXISTS completed_orders (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL,
            token TEXT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- MenuRepository implementation ---

func (r *menuRepository) Upsert(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (id, name, price, available)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (name) DO UPDATE
                   SET price = EXCLUDED.price, available = EXCLUDED.available, updated_at = NOW()
                   RETURNING id`
	stored := *item
	err := r.storage.pool.QueryRow(ctx, query, item.ID, item.Name, item.Price, item.Available).Scan(&stored.ID)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *menuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	const query = `SELECT id, name, price, available FROM menu_items ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.Available); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) DecrementAvailability(ctx context.Context, name string, qty int) error {
	const query = `UPDATE menu_items
                   SET available = GREATEST(available - $2, 0), updated_at = NOW()
                   WHERE name = $1`
	_, err := r.storage.pool.Exec(ctx, query, name, qty)
	return err
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, false, fmt.Errorf("marshal items: %w", err)
	}

	const query = `INSERT INTO orders (session_id, token, status, items, total)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (session_id) DO NOTHING
                   RETURNING id, created_at, updated_at`
	stored := *order
	err = r.storage.pool.QueryRow(ctx, query, order.SessionID, order.Token, order.Status, itemsJSON, order.Total).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetBySession(ctx, order.SessionID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "orders_token_key" {
				return nil, false, domainErrors.ErrTokenTaken
			}
			existing, getErr := r.GetBySession(ctx, order.SessionID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &stored, true, nil
}

const orderColumns = `id, session_id, token, status, items, total,
                      COALESCE(qr_content, ''), COALESCE(payment_screenshot, ''),
                      created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order     model.Order
		itemsJSON []byte
	)
	err := row.Scan(&order.ID, &order.SessionID, &order.Token, &order.Status, &itemsJSON,
		&order.Total, &order.QRContent, &order.PaymentScreenshot, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &order, nil
}

func (r *orderRepository) GetBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE session_id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByToken(ctx context.Context, token string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE token=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) QRContentExists(ctx context.Context, qrContent string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM orders WHERE qr_content=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, qrContent).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *orderRepository) AttachProof(ctx context.Context, sessionID, qrContent, screenshotURL string) (*model.Order, error) {
	query := `UPDATE orders
              SET qr_content=$2, payment_screenshot=$3, status=$4, updated_at=NOW()
              WHERE session_id=$1 AND status=$5
              RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query,
		sessionID, qrContent, screenshotURL, model.OrderStatusUploaded, model.OrderStatusPendingUpload))
	if err == nil {
		return order, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_qr_content_key" {
		return nil, domainErrors.ErrDuplicateProof
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetBySession(ctx, sessionID); getErr != nil {
			return nil, getErr
		}
		// Order exists but already left the pending-upload state.
		return nil, domainErrors.ErrAlreadyExists
	}
	return nil, err
}

func (r *orderRepository) ListStalePendingUpload(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND created_at < $2
              ORDER BY created_at
              LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusPendingUpload, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CompletedOrderRepository implementation ---

func (r *completedOrderRepository) Create(ctx context.Context, record *model.CompletedOrder) (*model.CompletedOrder, error) {
	itemsJSON, err := json.Marshal(record.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	const query = `INSERT INTO completed_orders (order_id, token, items, total)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, completed_at`
	stored := *record
	err = r.storage.pool.QueryRow(ctx, query, record.OrderID, record.Token, itemsJSON, record.Total).
		Scan(&stored.ID, &stored.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *completedOrderRepository) List(ctx context.Context) ([]model.CompletedOrder, error) {
	const query = `SELECT id, order_id, token, items, total, completed_at
                   FROM completed_orders ORDER BY completed_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CompletedOrder
	for rows.Next() {
		var (
			rec       model.CompletedOrder
			itemsJSON []byte
		)
		if err := rows.Scan(&rec.ID, &rec.OrderID, &rec.Token, &itemsJSON, &rec.Total, &rec.CompletedAt); err != nil {
			return nil, err
		}
		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &rec.Items); err != nil {
				return nil, fmt.Errorf("unmarshal items: %w", err)
			}
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
