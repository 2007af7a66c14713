package emissions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/attribution"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/decomposition"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/factors"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/lifecycle"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/quality"
)

// DefaultBatchConcurrency bounds the per-instrument fan-out in batch runs
const DefaultBatchConcurrency = 8

// Service orchestrates the financed-emissions pipeline: factor resolution,
// attribution, quality classification, scope decomposition and, optionally,
// reconciliation against the authoritative calculation service.
type Service struct {
	resolver      *factors.Resolver
	attribution   *attribution.Calculator
	classifier    *quality.Classifier
	decomposer    decomposition.LocalDecomposer
	reconciler    decomposition.AuthoritativeReconciler
	projector     *lifecycle.Projector
	authoritative AuthoritativeClient
	repo          Repository
	logger        *zap.Logger

	batchConcurrency int
}

// ServiceOption configures optional service collaborators
type ServiceOption func(*Service)

// WithAuthoritativeClient enables the external authoritative calculation path
func WithAuthoritativeClient(client AuthoritativeClient) ServiceOption {
	return func(s *Service) { s.authoritative = client }
}

// WithRepository enables persistence of calculation results
func WithRepository(repo Repository) ServiceOption {
	return func(s *Service) { s.repo = repo }
}

// WithScoreTable overrides the PCAF score mapping
func WithScoreTable(table quality.ScoreTable) ServiceOption {
	return func(s *Service) { s.classifier = quality.NewClassifier(table) }
}

// WithBatchConcurrency bounds the batch worker pool
func WithBatchConcurrency(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithDaysPerMonth overrides the temporal-attribution month approximation
func WithDaysPerMonth(days float64) ServiceOption {
	return func(s *Service) {
		if days > 0 {
			s.attribution.DaysPerMonth = days
		}
	}
}

// WithFacilityHorizon overrides the LC/guarantee projection horizon
func WithFacilityHorizon(years int) ServiceOption {
	return func(s *Service) {
		if years > 0 {
			s.projector.FacilityHorizonYears = years
		}
	}
}

// NewService creates the calculation service
func NewService(store factors.ReferenceStore, logger *zap.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		resolver:         factors.NewResolver(store),
		attribution:      attribution.NewCalculator(),
		classifier:       quality.NewClassifier(nil),
		decomposer:       decomposition.NewStandardDecomposer(),
		reconciler:       decomposition.ScalingReconciler{},
		projector:        lifecycle.NewProjector(),
		authoritative:    nil,
		logger:           logger,
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate runs the full pipeline for one instrument and returns a fresh,
// immutable result. Pipeline stages are strictly sequential; each consumes
// the prior stage's output.
func (s *Service) Calculate(ctx context.Context, input *CalculationInput) (*CalculationResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	result := &CalculationResult{
		InstrumentID:   input.Instrument.ID,
		InstrumentType: input.Instrument.Type,
		DataSource:     SourceLocal,
		CalculatedAt:   time.Now().UTC(),
	}

	// Attribution
	attrFactor, outOfRange, err := s.attribution.StaticFactor(
		input.Instrument.OutstandingBalance, input.Vehicle.AssetValue)
	if err != nil {
		return nil, NewValidationError("asset_value", err.Error())
	}
	if outOfRange {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("attribution factor %.4f outside [0,1]: outstanding balance exceeds asset value", attrFactor))
	}
	result.AttributionFactor = attrFactor
	result.TemporalAttribution = s.attribution.TemporalFactor(
		input.Instrument.OriginationDate, input.ReportingDate)

	// Data quality
	distance := input.Vehicle.AnnualDistanceKM
	actualDistance := distance > 0
	if !actualDistance {
		distance = factors.DefaultAnnualDistanceKM(string(input.Vehicle.Category))
	}
	classification := s.classifier.Classify(quality.Signals{
		VehicleSpecific: input.Vehicle.Subcategory != "" && input.Vehicle.EngineSizeBand != "",
		ActualDistance:  actualDistance,
		HasOrigination:  input.Instrument.OriginationDate != nil,
		HasCategory:     input.Vehicle.Category != "",
	})
	result.PCAFDataOption = PCAFOption(classification.Option)
	result.DataQualityScore = classification.Score
	result.QualityDrivers = classification.Drivers

	// Reference factors
	resolved, err := s.resolver.Resolve(ctx,
		string(input.Vehicle.Category), string(input.Vehicle.FuelType),
		input.Vehicle.EngineSizeBand, input.Vehicle.Country)
	if err != nil {
		return nil, err
	}

	activity := decomposition.Activity{
		FuelType:           string(input.Vehicle.FuelType),
		AnnualDistanceKM:   distance,
		CombustionKGPerKM:  resolved.Factor.CombustionKGPerKM,
		IsNew:              input.Vehicle.IsNew,
		EmbodiedEmissionKG: input.Vehicle.EmbodiedEmissionKG,
	}
	if resolved.Grid != nil {
		activity.ElectricityKWHPerKM = resolved.Factor.ElectricityKWHPerKM
		activity.GridKGPerKWH = resolved.Grid.KGPerKWH
	}

	scopes, err := s.decomposer.Decompose(activity)
	if err != nil {
		return nil, fmt.Errorf("scope decomposition failed: %w", err)
	}

	// Authoritative reconciliation, degrading to local-only on failure
	if s.authoritative != nil {
		scopes = s.reconcileAuthoritative(ctx, input, result, scopes)
	}

	result.Scope1Emissions = scopes.Scope1
	result.Scope2Emissions = scopes.Scope2
	result.Scope3Emissions = scopes.Scope3
	result.TotalAnnualEmissions = scopes.Total()
	result.FinancedEmissions = result.TotalAnnualEmissions * result.AttributionFactor * result.TemporalAttribution
	result.PCAFCompliant = result.DataQualityScore <= 3

	if s.repo != nil {
		if err := s.persist(ctx, input, result); err != nil {
			s.logger.Error("Failed to persist calculation result",
				zap.String("instrument_id", result.InstrumentID), zap.Error(err))
		}
	}

	return result, nil
}

// reconcileAuthoritative calls the external service and rescales the local
// scopes to its annual total. Failures never block the calculation: the
// result falls back to local figures and is marked degraded.
func (s *Service) reconcileAuthoritative(ctx context.Context, input *CalculationInput, result *CalculationResult, local decomposition.Scopes) decomposition.Scopes {
	auth, err := s.authoritative.Calculate(ctx, input)
	if err != nil {
		s.logger.Warn("Authoritative calculation unavailable, using local decomposition",
			zap.String("instrument_id", input.Instrument.ID), zap.Error(err))
		result.DataSource = SourceLocalDegraded
		result.Warnings = append(result.Warnings, "authoritative service unavailable, local figures used")
		return local
	}

	// Authoritative attribution and quality figures take precedence.
	if auth.AttributionFactor != nil {
		result.AttributionFactor = *auth.AttributionFactor
	}
	if auth.DataQualityScore != nil {
		result.DataQualityScore = *auth.DataQualityScore
	}
	if auth.PCAFDataOption != "" {
		result.PCAFDataOption = PCAFOption(auth.PCAFDataOption)
	}
	if len(auth.QualityDrivers) > 0 {
		result.QualityDrivers = auth.QualityDrivers
	}

	reconciled, scaled := s.reconciler.Reconcile(local, auth.AnnualEmissions)
	if !scaled {
		result.Warnings = append(result.Warnings,
			"local scope decomposition was zero, authoritative total attributed to scope 1")
	}
	result.DataSource = SourceAuthoritative
	return reconciled
}

// CalculateBatch runs the pipeline for many instruments concurrently. Results
// keep input order; an instrument's failure is reported in Errors without
// failing the batch.
type BatchResult struct {
	Results []*CalculationResult `json:"results"`
	Errors  map[string]string    `json:"errors,omitempty"`
}

func (s *Service) CalculateBatch(ctx context.Context, inputs []*CalculationInput) (*BatchResult, error) {
	out := &BatchResult{
		Results: make([]*CalculationResult, len(inputs)),
		Errors:  make(map[string]string),
	}

	sem := make(chan struct{}, s.batchConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, input := range inputs {
		if input == nil {
			out.Errors[fmt.Sprintf("input[%d]", i)] = "calculation input is required"
			continue
		}
		wg.Add(1)
		go func(idx int, in *CalculationInput) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := s.Calculate(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				key := in.Instrument.ID
				if key == "" {
					key = fmt.Sprintf("input[%d]", idx)
				}
				out.Errors[key] = err.Error()
				return
			}
			out.Results[idx] = res
		}(i, input)
	}

	wg.Wait()

	// Compact nil slots left by failed instruments
	compacted := out.Results[:0]
	for _, r := range out.Results {
		if r != nil {
			compacted = append(compacted, r)
		}
	}
	out.Results = compacted

	return out, nil
}

// Project builds the multi-year lifecycle trajectory for an instrument. The
// calculation result supplies the annual emissions figure.
func (s *Service) Project(ctx context.Context, input *CalculationInput) ([]lifecycle.Year, *lifecycle.Summary, error) {
	result, err := s.Calculate(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	years, summary, err := s.projector.Project(lifecycle.Input{
		InstrumentType:       string(input.Instrument.Type),
		PrincipalAmount:      input.Instrument.PrincipalAmount,
		OutstandingBalance:   input.Instrument.OutstandingBalance,
		AssetValue:           input.Vehicle.AssetValue,
		TermYears:            input.Instrument.TermYears,
		TotalAnnualEmissions: result.TotalAnnualEmissions,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("lifecycle projection failed: %w", err)
	}
	return years, &summary, nil
}

func (s *Service) persist(ctx context.Context, input *CalculationInput, result *CalculationResult) error {
	driversJSON, _ := json.Marshal(result.QualityDrivers)
	warningsJSON, _ := json.Marshal(result.Warnings)

	stored := &StoredCalculation{
		PortfolioID:          input.PortfolioID,
		InstrumentID:         result.InstrumentID,
		InstrumentType:       string(result.InstrumentType),
		PrincipalAmount:      input.Instrument.PrincipalAmount,
		OutstandingBalance:   input.Instrument.OutstandingBalance,
		AttributionFactor:    result.AttributionFactor,
		TemporalAttribution:  result.TemporalAttribution,
		Scope1Emissions:      result.Scope1Emissions,
		Scope2Emissions:      result.Scope2Emissions,
		Scope3Emissions:      result.Scope3Emissions,
		TotalAnnualEmissions: result.TotalAnnualEmissions,
		FinancedEmissions:    result.FinancedEmissions,
		PCAFDataOption:       string(result.PCAFDataOption),
		DataQualityScore:     result.DataQualityScore,
		PCAFCompliant:        result.PCAFCompliant,
		QualityDrivers:       datatypes.JSON(driversJSON),
		Warnings:             datatypes.JSON(warningsJSON),
		DataSource:           string(result.DataSource),
	}
	return s.repo.SaveCalculation(ctx, stored)
}

// validateInput rejects incomplete or non-positive inputs before any
// calculation runs, naming the offending field.
func validateInput(input *CalculationInput) error {
	if input == nil {
		return NewValidationError("input", "calculation input is required")
	}
	if input.Instrument.ID == "" {
		return NewValidationError("instrument.id", "instrument id is required")
	}
	if input.Instrument.OutstandingBalance <= 0 {
		return NewValidationError("instrument.outstanding_balance", "outstanding balance must be positive")
	}
	if input.Vehicle.AssetValue <= 0 {
		return NewValidationError("vehicle.asset_value", "asset value must be positive")
	}
	if input.Vehicle.Category == "" {
		return NewValidationError("vehicle.category", "vehicle category is required")
	}
	if input.Vehicle.FuelType == "" {
		return NewValidationError("vehicle.fuel_type", "fuel type is required")
	}
	return nil
}
