package factors

import (
	"context"
	"fmt"
	"strings"
)

// NotFoundError signals a reference-data gap: no matching emission factor, or
// no grid factor even after falling back to the Global Average entry. This is
// a data-completeness condition distinct from a calculation error and must
// not be collapsed into a silent zero.
type NotFoundError struct {
	Kind string // "emission_factor" or "grid_factor"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found for %s", e.Kind, e.Key)
}

// Resolver looks up the best-matching emission factor and, for electric and
// hybrid fuel types, the matching grid carbon-intensity factor.
type Resolver struct {
	store ReferenceStore
}

// NewResolver creates a resolver backed by a reference store
func NewResolver(store ReferenceStore) *Resolver {
	return &Resolver{store: store}
}

// Resolved bundles a lookup result. Grid is nil for non-electric fuel types.
type Resolved struct {
	Factor *EmissionFactor
	Grid   *GridEmissionFactor
}

// Resolve finds the emission factor for (category, fuel, band) and the grid
// factor for country when the fuel type draws electricity.
//
// Matching rule: (category matches VehicleCategory OR the legacy vehicle-type
// alias) AND fuel type matches AND (band matches exactly OR the factor's band
// is "all"). An exact band match wins over a wildcard match.
func (r *Resolver) Resolve(ctx context.Context, category, fuelType, engineBand, country string) (*Resolved, error) {
	all, err := r.store.ListEmissionFactors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load emission factors: %w", err)
	}

	var wildcard *EmissionFactor
	var exact *EmissionFactor
	for i := range all {
		f := &all[i]
		if !strings.EqualFold(f.FuelType, fuelType) {
			continue
		}
		if !strings.EqualFold(f.VehicleCategory, category) && !strings.EqualFold(f.LegacyVehicleType, category) {
			continue
		}
		switch {
		case engineBand != "" && strings.EqualFold(f.EngineSizeBand, engineBand):
			exact = f
		case strings.EqualFold(f.EngineSizeBand, BandAll):
			if wildcard == nil {
				wildcard = f
			}
		}
	}

	factor := exact
	if factor == nil {
		factor = wildcard
	}
	if factor == nil {
		return nil, &NotFoundError{
			Kind: "emission_factor",
			Key:  fmt.Sprintf("category=%s fuel=%s band=%s", category, fuelType, engineBand),
		}
	}

	resolved := &Resolved{Factor: factor}

	if strings.EqualFold(fuelType, "electric") || strings.EqualFold(fuelType, "hybrid") {
		grid, err := r.resolveGrid(ctx, country)
		if err != nil {
			return nil, err
		}
		resolved.Grid = grid
	}

	return resolved, nil
}

// resolveGrid finds the grid factor for a country, falling back to the
// Global Average entry. Fails only when even the fallback is absent.
func (r *Resolver) resolveGrid(ctx context.Context, country string) (*GridEmissionFactor, error) {
	grids, err := r.store.ListGridFactors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grid factors: %w", err)
	}

	var fallback *GridEmissionFactor
	for i := range grids {
		g := &grids[i]
		if country != "" && strings.EqualFold(g.Region, country) {
			return g, nil
		}
		if strings.EqualFold(g.Region, GlobalAverageRegion) {
			fallback = g
		}
	}

	if fallback == nil {
		key := country
		if key == "" {
			key = GlobalAverageRegion
		}
		return nil, &NotFoundError{Kind: "grid_factor", Key: key}
	}
	return fallback, nil
}
