package emissions

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository defines persistence for calculation results.
type Repository interface {
	SaveCalculation(ctx context.Context, calc *StoredCalculation) error
	ListCalculations(ctx context.Context, portfolioID string) ([]StoredCalculation, error)
	LatestPerInstrument(ctx context.Context, portfolioID string) ([]StoredCalculation, error)
}

// GormRepository implements Repository using PostgreSQL via GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a database-backed repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates the results table
func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&StoredCalculation{})
}

func (r *GormRepository) SaveCalculation(ctx context.Context, calc *StoredCalculation) error {
	if err := r.db.WithContext(ctx).Create(calc).Error; err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

func (r *GormRepository) ListCalculations(ctx context.Context, portfolioID string) ([]StoredCalculation, error) {
	var out []StoredCalculation
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if portfolioID != "" {
		query = query.Where("portfolio_id = ?", portfolioID)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return out, nil
}

// LatestPerInstrument returns only the most recent calculation per
// instrument: a re-calculation supersedes earlier results.
func (r *GormRepository) LatestPerInstrument(ctx context.Context, portfolioID string) ([]StoredCalculation, error) {
	all, err := r.ListCalculations(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(all))
	latest := make([]StoredCalculation, 0, len(all))
	for _, calc := range all { // ordered newest first
		if seen[calc.InstrumentID] {
			continue
		}
		seen[calc.InstrumentID] = true
		latest = append(latest, calc)
	}
	return latest, nil
}
