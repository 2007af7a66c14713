package factors

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BandAll matches any engine-size band
const BandAll = "all"

// GlobalAverageRegion is the mandatory grid fallback entry
const GlobalAverageRegion = "Global Average"

// EmissionFactor carries combustion and electricity intensity for a vehicle
// category / fuel type / engine-size band combination. Combustion intensity is
// kg CO2e per km; electricity consumption is kWh per km and only meaningful
// for electric and hybrid drivetrains.
type EmissionFactor struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VehicleCategory     string    `json:"vehicle_category" gorm:"not null;index"`
	LegacyVehicleType   string    `json:"legacy_vehicle_type" gorm:"index"`
	FuelType            string    `json:"fuel_type" gorm:"not null;index"`
	EngineSizeBand      string    `json:"engine_size_band" gorm:"not null;default:'all'"`
	CombustionKGPerKM   float64   `json:"combustion_kg_per_km" gorm:"type:decimal(8,5)"`
	ElectricityKWHPerKM float64   `json:"electricity_kwh_per_km" gorm:"type:decimal(8,5)"`
	Source              string    `json:"source"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default GORM table name
func (EmissionFactor) TableName() string {
	return "vehicle_emission_factors"
}

// GridEmissionFactor carries grid carbon intensity (kg CO2e per kWh) per
// country/region. The reference data must contain a "Global Average" entry.
type GridEmissionFactor struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Region      string    `json:"region" gorm:"not null;uniqueIndex"`
	KGPerKWH    float64   `json:"kg_per_kwh" gorm:"type:decimal(8,5)"`
	Source      string    `json:"source"`
	VintageYear int       `json:"vintage_year"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default GORM table name
func (GridEmissionFactor) TableName() string {
	return "grid_emission_factors"
}

// ReferenceStore is the read-only source of emission factor reference data.
type ReferenceStore interface {
	ListEmissionFactors(ctx context.Context) ([]EmissionFactor, error)
	ListGridFactors(ctx context.Context) ([]GridEmissionFactor, error)
}
