package emissions

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pcaf/vehicle-finance/emissions-backend/internal/emissions/factors"
	"pcaf/vehicle-finance/emissions-backend/internal/export"
)

// Handler handles HTTP requests for financed-emissions operations
type Handler struct {
	service    *Service
	portfolios *PortfolioService
	store      factors.ReferenceStore
	logger     *zap.Logger
}

// NewHandler creates a new emissions handler
func NewHandler(service *Service, portfolios *PortfolioService, store factors.ReferenceStore, logger *zap.Logger) *Handler {
	return &Handler{
		service:    service,
		portfolios: portfolios,
		store:      store,
		logger:     logger,
	}
}

// RegisterRoutes registers emissions routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	emissions := router.Group("/emissions")
	{
		emissions.POST("/calculate", h.calculate)
		emissions.POST("/calculate/batch", h.calculateBatch)
		emissions.POST("/projections", h.project)

		emissions.GET("/portfolio/summary", h.portfolioSummary)
		emissions.GET("/portfolio/export", h.exportPortfolio)

		emissions.GET("/factors", h.listFactors)
		emissions.GET("/factors/grid", h.listGridFactors)
	}
}

// calculate handles POST /api/v1/emissions/calculate
func (h *Handler) calculate(c *gin.Context) {
	var input CalculationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.portfolios != nil {
		h.portfolios.Invalidate(input.PortfolioID)
	}

	c.JSON(http.StatusOK, result)
}

// calculateBatch handles POST /api/v1/emissions/calculate/batch
func (h *Handler) calculateBatch(c *gin.Context) {
	var inputs []*CalculationInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one instrument is required"})
		return
	}

	batch, err := h.service.CalculateBatch(c.Request.Context(), inputs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.portfolios != nil {
		h.portfolios.InvalidateAll()
	}

	c.JSON(http.StatusOK, batch)
}

// project handles POST /api/v1/emissions/projections
func (h *Handler) project(c *gin.Context) {
	var input CalculationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	years, summary, err := h.service.Project(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"instrument_id": input.Instrument.ID,
		"projection":    years,
		"summary":       summary,
	})
}

// portfolioSummary handles GET /api/v1/emissions/portfolio/summary
func (h *Handler) portfolioSummary(c *gin.Context) {
	if h.portfolios == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "portfolio aggregation requires persistence"})
		return
	}

	summary, err := h.portfolios.Summary(c.Request.Context(), c.Query("portfolio_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// exportPortfolio handles GET /api/v1/emissions/portfolio/export
func (h *Handler) exportPortfolio(c *gin.Context) {
	if h.portfolios == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "portfolio export requires persistence"})
		return
	}

	portfolioID := c.Query("portfolio_id")
	format := c.DefaultQuery("format", "csv")

	summary, err := h.portfolios.Summary(c.Request.Context(), portfolioID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	entries, err := h.portfolios.Entries(c.Request.Context(), portfolioID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	var contentType, ext string

	switch format {
	case "csv":
		err = export.WritePortfolioCSV(&buf, summary, entries)
		contentType, ext = "text/csv", "csv"
	case "xlsx":
		err = export.WritePortfolioExcel(&buf, summary, entries)
		contentType, ext = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case "pdf":
		err = export.WritePortfolioPDF(&buf, summary, entries)
		contentType, ext = "application/pdf", "pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format: %s", format)})
		return
	}
	if err != nil {
		h.logger.Error("Failed to export portfolio", zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("financed-emissions-%s.%s", time.Now().Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// listFactors handles GET /api/v1/emissions/factors
func (h *Handler) listFactors(c *gin.Context) {
	list, err := h.store.ListEmissionFactors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factors": list, "count": len(list)})
}

// listGridFactors handles GET /api/v1/emissions/factors/grid
func (h *Handler) listGridFactors(c *gin.Context) {
	list, err := h.store.ListGridFactors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factors": list, "count": len(list)})
}

// respondError maps the error taxonomy onto HTTP statuses: validation errors
// and reference-data gaps name the field or factor; anything else is a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "field": validation.Field})
		return
	}

	var notFound *factors.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "insufficient reference data",
			"kind":   notFound.Kind,
			"lookup": notFound.Key,
		})
		return
	}

	h.logger.Error("Calculation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
