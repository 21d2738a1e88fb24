package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

// CanteenFacade exposes the subset of application functionality required by the worker.
type CanteenFacade interface {
	StaleUploads(ctx context.Context, limit int) ([]model.Order, error)
	AuditSession(ctx context.Context, order model.Order) error
}

// UploadMonitor polls for orders stuck awaiting a proof upload and audits
// their payment sessions concurrently. It only observes and logs; orders are
// never mutated from here.
type UploadMonitor struct {
	facade       CanteenFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewUploadMonitor constructs the stale-upload worker pool.
func NewUploadMonitor(facade CanteenFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *UploadMonitor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &UploadMonitor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (m *UploadMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(runCtx)
	}

	m.wg.Add(1)
	go m.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (m *UploadMonitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *UploadMonitor) dispatch(ctx context.Context) {
	defer m.wg.Done()
	defer close(m.jobs)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.fetchAndDispatch(ctx)
		}
	}
}

func (m *UploadMonitor) fetchAndDispatch(ctx context.Context) {
	orders, err := m.facade.StaleUploads(ctx, m.batchSize)
	if err != nil {
		m.logger.Error("fetch stale uploads failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case m.jobs <- order:
		}
	}
}

func (m *UploadMonitor) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-m.jobs:
			if !ok {
				return
			}
			m.auditOrder(ctx, order)
		}
	}
}

func (m *UploadMonitor) auditOrder(ctx context.Context, order model.Order) {
	err := m.facade.AuditSession(ctx, order)
	if err == nil {
		return
	}
	if errors.Is(err, domainErrors.ErrVerificationUnavailable) {
		// Processor outage; back off until the next poll instead of
		// hammering it for every queued order.
		m.logger.Warn("payment processor unavailable during audit",
			slog.String("session_id", order.SessionID))
		time.Sleep(m.pollInterval)
		return
	}
	m.logger.Error("stale order audit failed",
		slog.String("session_id", order.SessionID), slog.String("error", err.Error()))
}
