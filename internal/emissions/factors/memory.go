package factors

import "context"

// MemoryStore is a ReferenceStore backed by in-memory tables. It is used for
// the embedded default factor set and in tests; the data is read-only after
// construction.
type MemoryStore struct {
	factors []EmissionFactor
	grids   []GridEmissionFactor
}

// NewMemoryStore creates a store over the given reference tables
func NewMemoryStore(factors []EmissionFactor, grids []GridEmissionFactor) *MemoryStore {
	return &MemoryStore{factors: factors, grids: grids}
}

// NewDefaultStore creates a store seeded with the embedded global-average
// factor set, so the engine produces results without a database.
func NewDefaultStore() *MemoryStore {
	return NewMemoryStore(DefaultEmissionFactors(), DefaultGridFactors())
}

func (s *MemoryStore) ListEmissionFactors(ctx context.Context) ([]EmissionFactor, error) {
	return s.factors, nil
}

func (s *MemoryStore) ListGridFactors(ctx context.Context) ([]GridEmissionFactor, error) {
	return s.grids, nil
}
