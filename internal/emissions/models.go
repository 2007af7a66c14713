package emissions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// InstrumentType represents the kind of financing instrument
type InstrumentType string

const (
	InstrumentLoan           InstrumentType = "loan"
	InstrumentLetterOfCredit InstrumentType = "letter_of_credit"
	InstrumentGuarantee      InstrumentType = "guarantee"
)

// FuelType represents the vehicle fuel/drivetrain type
type FuelType string

const (
	FuelGasoline   FuelType = "gasoline"
	FuelDiesel     FuelType = "diesel"
	FuelElectric   FuelType = "electric"
	FuelHybrid     FuelType = "hybrid"
	FuelNaturalGas FuelType = "natural_gas"
	FuelPropane    FuelType = "propane"
)

// VehicleCategory classifies the financed asset
type VehicleCategory string

const (
	CategoryPassengerCar    VehicleCategory = "passenger_car"
	CategoryMotorcycle      VehicleCategory = "motorcycle"
	CategoryLightTruck      VehicleCategory = "light_commercial_truck"
	CategoryMediumTruck     VehicleCategory = "medium_commercial_truck"
	CategoryHeavyTruck      VehicleCategory = "heavy_commercial_truck"
	CategoryBus             VehicleCategory = "bus"
	CategoryRecreational    VehicleCategory = "recreational_vehicle"
	CategoryBoat            VehicleCategory = "boat"
	CategoryYellowEquipment VehicleCategory = "yellow_equipment"
)

// PCAFOption is the PCAF data option code ranking data provenance (1a best, 3b worst)
type PCAFOption string

const (
	Option1a PCAFOption = "1a"
	Option1b PCAFOption = "1b"
	Option2a PCAFOption = "2a"
	Option2b PCAFOption = "2b"
	Option3a PCAFOption = "3a"
	Option3b PCAFOption = "3b"
)

// DataSource marks the provenance of a calculation result
type DataSource string

const (
	SourceLocal         DataSource = "local"
	SourceAuthoritative DataSource = "authoritative"
	SourceLocalDegraded DataSource = "local_degraded"
)

// Instrument represents a loan, letter of credit, or guarantee financing a vehicle.
// 0 <= OutstandingBalance <= PrincipalAmount is recommended but not enforced here;
// out-of-range inputs surface as warnings, not corrections.
type Instrument struct {
	ID                 string         `json:"id"`
	Type               InstrumentType `json:"type"`
	PrincipalAmount    float64        `json:"principal_amount"`
	OutstandingBalance float64        `json:"outstanding_balance"`
	ShareOfFinancing   float64        `json:"share_of_financing"`
	OriginationDate    *time.Time     `json:"origination_date,omitempty"`
	TermYears          int            `json:"term_years"`
}

// VehicleFacts carries everything known about the financed vehicle.
// Only Category, FuelType and AssetValue are required; every optional field
// improves the data-quality classification but is never required for a result.
type VehicleFacts struct {
	Category           VehicleCategory `json:"category"`
	Subcategory        string          `json:"subcategory,omitempty"`
	FuelType           FuelType        `json:"fuel_type"`
	EngineSizeBand     string          `json:"engine_size_band,omitempty"`
	AnnualDistanceKM   float64         `json:"annual_distance_km,omitempty"`
	AssetValue         float64         `json:"asset_value"`
	Country            string          `json:"country,omitempty"`
	IsNew              bool            `json:"is_new"`
	EmbodiedEmissionKG float64         `json:"embodied_emission_kg,omitempty"`
}

// CalculationInput is the immutable input record for a single calculation.
type CalculationInput struct {
	Instrument    Instrument   `json:"instrument"`
	Vehicle       VehicleFacts `json:"vehicle"`
	ReportingDate *time.Time   `json:"reporting_date,omitempty"`
	PortfolioID   string       `json:"portfolio_id,omitempty"`
}

// CalculationResult is the per-instrument financed-emissions result.
// All emission values are metric tonnes CO2e per year; factors are 0-1 fractions.
// A result is created fresh on every calculation and never mutated.
type CalculationResult struct {
	InstrumentID         string         `json:"instrument_id"`
	InstrumentType       InstrumentType `json:"instrument_type"`
	AttributionFactor    float64        `json:"attribution_factor"`
	TemporalAttribution  float64        `json:"temporal_attribution"`
	Scope1Emissions      float64        `json:"scope_1_emissions"`
	Scope2Emissions      float64        `json:"scope_2_emissions"`
	Scope3Emissions      float64        `json:"scope_3_emissions"`
	TotalAnnualEmissions float64        `json:"total_annual_emissions"`
	FinancedEmissions    float64        `json:"financed_emissions"`
	PCAFDataOption       PCAFOption     `json:"pcaf_data_option"`
	DataQualityScore     int            `json:"data_quality_score"`
	PCAFCompliant        bool           `json:"pcaf_compliant"`
	QualityDrivers       []string       `json:"quality_drivers"`
	Warnings             []string       `json:"warnings,omitempty"`
	DataSource           DataSource     `json:"data_source"`
	CalculatedAt         time.Time      `json:"calculated_at"`
}

// StoredCalculation is the persisted form of a CalculationResult.
type StoredCalculation struct {
	ID                   uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PortfolioID          string         `json:"portfolio_id" gorm:"index"`
	InstrumentID         string         `json:"instrument_id" gorm:"not null;index"`
	InstrumentType       string         `json:"instrument_type" gorm:"not null;index"`
	PrincipalAmount      float64        `json:"principal_amount" gorm:"type:decimal(14,2)"`
	OutstandingBalance   float64        `json:"outstanding_balance" gorm:"type:decimal(14,2)"`
	AttributionFactor    float64        `json:"attribution_factor" gorm:"type:decimal(8,6)"`
	TemporalAttribution  float64        `json:"temporal_attribution" gorm:"type:decimal(8,6)"`
	Scope1Emissions      float64        `json:"scope_1_emissions" gorm:"type:decimal(12,4)"`
	Scope2Emissions      float64        `json:"scope_2_emissions" gorm:"type:decimal(12,4)"`
	Scope3Emissions      float64        `json:"scope_3_emissions" gorm:"type:decimal(12,4)"`
	TotalAnnualEmissions float64        `json:"total_annual_emissions" gorm:"type:decimal(12,4)"`
	FinancedEmissions    float64        `json:"financed_emissions" gorm:"type:decimal(12,4)"`
	PCAFDataOption       string         `json:"pcaf_data_option" gorm:"not null;index"`
	DataQualityScore     int            `json:"data_quality_score" gorm:"not null;index"`
	PCAFCompliant        bool           `json:"pcaf_compliant"`
	QualityDrivers       datatypes.JSON `json:"quality_drivers" gorm:"default:'[]'"`
	Warnings             datatypes.JSON `json:"warnings" gorm:"default:'[]'"`
	DataSource           string         `json:"data_source" gorm:"default:'local'"`
	CreatedAt            time.Time      `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName overrides the default GORM table name
func (StoredCalculation) TableName() string {
	return "financed_emissions_calculations"
}

// ComplianceStatus is the portfolio-level PCAF compliance classification
type ComplianceStatus string

const (
	StatusCompliant        ComplianceStatus = "compliant"
	StatusNeedsImprovement ComplianceStatus = "needs_improvement"
	StatusNonCompliant     ComplianceStatus = "non_compliant"
)
