package factors

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormStore is a ReferenceStore backed by PostgreSQL via GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed reference store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the reference tables
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&EmissionFactor{}, &GridEmissionFactor{})
}

// Seed inserts the embedded default factor set when the tables are empty.
func (s *GormStore) Seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&EmissionFactor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count emission factors: %w", err)
	}
	if count == 0 {
		defaults := DefaultEmissionFactors()
		if err := s.db.WithContext(ctx).Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to seed emission factors: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Model(&GridEmissionFactor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count grid factors: %w", err)
	}
	if count == 0 {
		defaults := DefaultGridFactors()
		if err := s.db.WithContext(ctx).Create(&defaults).Error; err != nil {
			return fmt.Errorf("failed to seed grid factors: %w", err)
		}
	}

	return nil
}

func (s *GormStore) ListEmissionFactors(ctx context.Context) ([]EmissionFactor, error) {
	var out []EmissionFactor
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list emission factors: %w", err)
	}
	return out, nil
}

func (s *GormStore) ListGridFactors(ctx context.Context) ([]GridEmissionFactor, error) {
	var out []GridEmissionFactor
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list grid factors: %w", err)
	}
	return out, nil
}
