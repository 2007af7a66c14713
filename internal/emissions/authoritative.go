package emissions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AuthoritativeResult is the payload returned by the external canonical
// calculation service. Its figures take precedence over the local pipeline
// and its annual total is used to reconcile local scope decomposition.
type AuthoritativeResult struct {
	AnnualEmissions   float64  `json:"annual_emissions"`
	AttributionFactor *float64 `json:"attribution_factor,omitempty"`
	DataQualityScore  *int     `json:"data_quality_score,omitempty"`
	PCAFDataOption    string   `json:"pcaf_data_option,omitempty"`
	QualityDrivers    []string `json:"quality_drivers,omitempty"`
}

// AuthoritativeClient calls the external authoritative calculation service.
type AuthoritativeClient interface {
	Calculate(ctx context.Context, input *CalculationInput) (*AuthoritativeResult, error)
}

// HTTPAuthoritativeClient is the HTTP implementation. Every call carries a
// timeout so a slow upstream degrades to local-only calculation instead of
// blocking the pipeline.
type HTTPAuthoritativeClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPAuthoritativeClient creates a client for the given base URL
func NewHTTPAuthoritativeClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPAuthoritativeClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPAuthoritativeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Calculate posts the instrument and vehicle payload and decodes the
// authoritative figures.
func (c *HTTPAuthoritativeClient) Calculate(ctx context.Context, input *CalculationInput) (*AuthoritativeResult, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal authoritative request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/calculations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build authoritative request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authoritative service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("authoritative service returned status %d", resp.StatusCode)
	}

	var result AuthoritativeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode authoritative response: %w", err)
	}

	return &result, nil
}
