// Package decomposition turns annual vehicle activity into Scope 1/2/3
// emissions (metric tonnes CO2e per year), with optional reconciliation
// against an authoritative total supplied by an external service.
package decomposition

import (
	"fmt"
	"strings"
)

// Scopes holds the three emission scopes in tonnes CO2e per year.
type Scopes struct {
	Scope1 float64 `json:"scope_1"`
	Scope2 float64 `json:"scope_2"`
	Scope3 float64 `json:"scope_3"`
}

// Total returns the sum of the three scopes
func (s Scopes) Total() float64 {
	return s.Scope1 + s.Scope2 + s.Scope3
}

// Activity is the decomposer input: resolved factors plus vehicle usage.
type Activity struct {
	FuelType            string
	AnnualDistanceKM    float64
	CombustionKGPerKM   float64
	ElectricityKWHPerKM float64
	GridKGPerKWH        float64
	IsNew               bool
	EmbodiedEmissionKG  float64
}

// LocalDecomposer computes scope emissions from local activity data. It is an
// explicit strategy so the local path stays testable independently of the
// authoritative reconciliation path.
type LocalDecomposer interface {
	Decompose(a Activity) (Scopes, error)
}

// AuthoritativeReconciler rescales locally decomposed scopes so they sum to
// an authoritative annual total from an upstream source of truth.
type AuthoritativeReconciler interface {
	Reconcile(local Scopes, authoritativeTotal float64) (Scopes, bool)
}

// Hybrid split between combustion and electric operation after independent
// computation of both paths.
const (
	HybridScope1Share = 0.6
	HybridScope2Share = 0.4
)

// StandardDecomposer is the default LocalDecomposer.
//
//	Scope 1: distance x combustion factor / 1000, all fuels except pure electric
//	Scope 2: distance x kWh/km x grid factor / 1000, electric and hybrid only
//	Scope 3: embodied mass / 1000, new vehicles with a known embodied figure
type StandardDecomposer struct {
	Scope1HybridShare float64
	Scope2HybridShare float64
}

// NewStandardDecomposer creates a decomposer with the standard hybrid split
func NewStandardDecomposer() *StandardDecomposer {
	return &StandardDecomposer{
		Scope1HybridShare: HybridScope1Share,
		Scope2HybridShare: HybridScope2Share,
	}
}

func (d *StandardDecomposer) Decompose(a Activity) (Scopes, error) {
	if a.AnnualDistanceKM < 0 {
		return Scopes{}, fmt.Errorf("annual distance must not be negative, got %v", a.AnnualDistanceKM)
	}

	fuel := strings.ToLower(a.FuelType)
	electric := fuel == "electric"
	hybrid := fuel == "hybrid"

	var s Scopes

	if !electric {
		s.Scope1 = a.AnnualDistanceKM * a.CombustionKGPerKM / 1000
	}

	if electric || hybrid {
		s.Scope2 = a.AnnualDistanceKM * a.ElectricityKWHPerKM * a.GridKGPerKWH / 1000
	}

	if hybrid {
		s.Scope1 *= d.Scope1HybridShare
		s.Scope2 *= d.Scope2HybridShare
	}

	if a.IsNew && a.EmbodiedEmissionKG > 0 {
		s.Scope3 = a.EmbodiedEmissionKG / 1000
	}

	return s, nil
}

// ScalingReconciler rescales all three scopes by a single factor so they sum
// exactly to the authoritative total, preserving scope-level detail while
// agreeing with the upstream figure.
//
// When the local sum is zero there is nothing to scale; the authoritative
// total is attributed entirely to Scope 1 and the second return value is
// false to mark the degraded fallback.
type ScalingReconciler struct{}

func (ScalingReconciler) Reconcile(local Scopes, authoritativeTotal float64) (Scopes, bool) {
	sum := local.Total()
	if sum == 0 {
		return Scopes{Scope1: authoritativeTotal}, false
	}

	ratio := authoritativeTotal / sum
	return Scopes{
		Scope1: local.Scope1 * ratio,
		Scope2: local.Scope2 * ratio,
		Scope3: local.Scope3 * ratio,
	}, true
}
