// Package worker keeps portfolio aggregates fresh in the background and
// archives periodic compliance snapshots.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions"
	"pcaf/vehicle-finance/emissions-backend/internal/export"
	"pcaf/vehicle-finance/emissions-backend/pkg/storage"
)

// RefreshWorker periodically recomputes portfolio summaries and, when an
// object store is configured, archives a CSV snapshot of the portfolio.
type RefreshWorker struct {
	portfolios *emissions.PortfolioService
	repo       emissions.Repository
	archive    storage.ObjectStore
	schedule   string
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewRefreshWorker creates a worker; archive may be nil.
func NewRefreshWorker(portfolios *emissions.PortfolioService, repo emissions.Repository, archive storage.ObjectStore, schedule string, logger *zap.Logger) *RefreshWorker {
	if schedule == "" {
		schedule = "@every 5m"
	}
	return &RefreshWorker{
		portfolios: portfolios,
		repo:       repo,
		archive:    archive,
		schedule:   schedule,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start registers the refresh job and starts the scheduler
func (w *RefreshWorker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, w.run)
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", w.schedule, err)
	}
	w.cron.Start()
	w.logger.Info("Portfolio refresh worker started", zap.String("schedule", w.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (w *RefreshWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
}

func (w *RefreshWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, portfolioID := range w.portfolioIDs(ctx) {
		if err := w.portfolios.Refresh(ctx, portfolioID); err != nil {
			w.logger.Error("Failed to refresh portfolio summary",
				zap.String("portfolio_id", portfolioID), zap.Error(err))
			continue
		}
		if w.archive != nil {
			w.archiveSnapshot(ctx, portfolioID)
		}
	}
}

// portfolioIDs lists the distinct portfolios present in stored results. The
// empty id covers the whole book.
func (w *RefreshWorker) portfolioIDs(ctx context.Context) []string {
	calcs, err := w.repo.LatestPerInstrument(ctx, "")
	if err != nil {
		w.logger.Error("Failed to list calculations for refresh", zap.Error(err))
		return nil
	}

	ids := []string{""}
	seen := map[string]bool{"": true}
	for _, c := range calcs {
		if !seen[c.PortfolioID] {
			seen[c.PortfolioID] = true
			ids = append(ids, c.PortfolioID)
		}
	}
	return ids
}

func (w *RefreshWorker) archiveSnapshot(ctx context.Context, portfolioID string) {
	summary, err := w.portfolios.Summary(ctx, portfolioID)
	if err != nil {
		w.logger.Error("Failed to load summary for archive", zap.Error(err))
		return
	}
	entries, err := w.portfolios.Entries(ctx, portfolioID)
	if err != nil {
		w.logger.Error("Failed to load entries for archive", zap.Error(err))
		return
	}

	var buf bytes.Buffer
	if err := export.WritePortfolioCSV(&buf, summary, entries); err != nil {
		w.logger.Error("Failed to render archive snapshot", zap.Error(err))
		return
	}

	name := portfolioID
	if name == "" {
		name = "all"
	}
	key := fmt.Sprintf("snapshots/%s/%s.csv", name, time.Now().UTC().Format("2006-01-02T15-04-05"))
	if _, err := w.archive.Upload(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		w.logger.Error("Failed to archive snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	w.logger.Debug("Archived portfolio snapshot", zap.String("key", key))
}
