package emissions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storedCalc(instrumentID, portfolioID string, emissions float64) StoredCalculation {
	return StoredCalculation{
		PortfolioID:       portfolioID,
		InstrumentID:      instrumentID,
		InstrumentType:    "loan",
		FinancedEmissions: emissions,
		DataQualityScore:  2,
		CreatedAt:         time.Now(),
	}
}

func TestPortfolioSummaryServedFromCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LatestPerInstrument", mock.Anything, "").
		Return([]StoredCalculation{storedCalc("LOAN-001", "P1", 1.5)}, nil).Once()

	svc := NewPortfolioService(repo, nil, time.Minute, zap.NewNop())
	defer svc.Close()

	first, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.InstrumentCount)

	// second read hits the cache, the single Once expectation still holds
	second, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	repo.AssertExpectations(t)
}

func TestInvalidateDropsWholeBookSummary(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LatestPerInstrument", mock.Anything, "").
		Return([]StoredCalculation{storedCalc("LOAN-001", "P1", 1.5)}, nil).Once()
	repo.On("LatestPerInstrument", mock.Anything, "").
		Return([]StoredCalculation{
			storedCalc("LOAN-001", "P1", 1.5),
			storedCalc("LOAN-002", "P2", 2.5),
		}, nil).Once()

	svc := NewPortfolioService(repo, nil, time.Minute, zap.NewNop())
	defer svc.Close()

	before, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, 1, before.InstrumentCount)

	// A new result in P2 changes the whole book, not just P2's roll-up.
	svc.Invalidate("P2")

	after, err := svc.Summary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, after.InstrumentCount)
	assert.InDelta(t, 4.0, after.TotalFinancedEmissions, 1e-9)
}

func TestInvalidateAllDropsEveryPortfolio(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LatestPerInstrument", mock.Anything, "P1").
		Return([]StoredCalculation{storedCalc("LOAN-001", "P1", 1.5)}, nil).Twice()

	svc := NewPortfolioService(repo, nil, time.Minute, zap.NewNop())
	defer svc.Close()

	_, err := svc.Summary(context.Background(), "P1")
	require.NoError(t, err)

	svc.InvalidateAll()

	// recomputed after invalidation, satisfying the Twice expectation
	_, err = svc.Summary(context.Background(), "P1")
	require.NoError(t, err)

	repo.AssertExpectations(t)
}
