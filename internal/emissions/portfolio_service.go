package emissions

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
)

// PortfolioService rebuilds portfolio summaries from the latest stored
// calculation per instrument, with a TTL cache in front. A summary owns no
// independent state; it is recomputed whenever the result set changes.
type PortfolioService struct {
	repo       Repository
	aggregator *portfolio.Aggregator
	cache      *portfolio.SummaryCache
	logger     *zap.Logger
}

// NewPortfolioService creates a portfolio service. A nil aggregator uses the
// standard PCAF compliance thresholds.
func NewPortfolioService(repo Repository, aggregator *portfolio.Aggregator, cacheTTL time.Duration, logger *zap.Logger) *PortfolioService {
	if aggregator == nil {
		aggregator = portfolio.NewAggregator()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &PortfolioService{
		repo:       repo,
		aggregator: aggregator,
		cache:      portfolio.NewSummaryCache(cacheTTL),
		logger:     logger,
	}
}

// Summary returns the portfolio roll-up, from cache when fresh.
func (s *PortfolioService) Summary(ctx context.Context, portfolioID string) (*portfolio.Summary, error) {
	key := cacheKey(portfolioID)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	summary, err := s.compute(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, summary)
	return summary, nil
}

// Entries returns the per-instrument rows feeding the summary, for exports.
func (s *PortfolioService) Entries(ctx context.Context, portfolioID string) ([]portfolio.Entry, error) {
	calcs, err := s.repo.LatestPerInstrument(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load calculations: %w", err)
	}
	return toEntries(calcs), nil
}

// Invalidate drops the cached summaries a new result affects: the portfolio's
// own roll-up and the whole-book roll-up, which spans every portfolio.
func (s *PortfolioService) Invalidate(portfolioID string) {
	s.cache.Delete(cacheKey(portfolioID))
	if portfolioID != "" {
		s.cache.Delete(cacheKey(""))
	}
}

// InvalidateAll drops every cached summary. Used after batch runs, which can
// touch many portfolios at once.
func (s *PortfolioService) InvalidateAll() {
	s.cache.DeleteByPrefix(summaryKeyPrefix)
}

// Refresh recomputes and re-caches the summary for a portfolio.
func (s *PortfolioService) Refresh(ctx context.Context, portfolioID string) error {
	summary, err := s.compute(ctx, portfolioID)
	if err != nil {
		return err
	}
	s.cache.Set(cacheKey(portfolioID), summary)
	s.logger.Debug("Refreshed portfolio summary",
		zap.String("portfolio_id", portfolioID),
		zap.Int("instruments", summary.InstrumentCount))
	return nil
}

// Close releases the cache cleanup loop
func (s *PortfolioService) Close() {
	s.cache.Close()
}

func (s *PortfolioService) compute(ctx context.Context, portfolioID string) (*portfolio.Summary, error) {
	calcs, err := s.repo.LatestPerInstrument(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load calculations: %w", err)
	}
	return s.aggregator.Aggregate(toEntries(calcs)), nil
}

func toEntries(calcs []StoredCalculation) []portfolio.Entry {
	entries := make([]portfolio.Entry, 0, len(calcs))
	for _, c := range calcs {
		entries = append(entries, portfolio.Entry{
			InstrumentID:       c.InstrumentID,
			InstrumentType:     c.InstrumentType,
			PrincipalAmount:    c.PrincipalAmount,
			OutstandingBalance: c.OutstandingBalance,
			FinancedEmissions:  c.FinancedEmissions,
			DataQualityScore:   c.DataQualityScore,
			CreatedAt:          c.CreatedAt,
		})
	}
	return entries
}

const summaryKeyPrefix = "portfolio_summary"

func cacheKey(portfolioID string) string {
	if portfolioID == "" {
		return summaryKeyPrefix + "_all"
	}
	return summaryKeyPrefix + "_" + portfolioID
}
