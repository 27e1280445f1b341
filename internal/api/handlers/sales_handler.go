package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
	"github.com/newagesw/sales-bi/backend-go/internal/ingest"
	"github.com/newagesw/sales-bi/backend-go/internal/service"
)

const maxUploadBytes = 32 << 20

// KPIRequest mirrors the dashboard's filter payload. Dimension fields are
// multi-select; empty slices place no restriction.
type KPIRequest struct {
	Period       string              `json:"period"`
	Country      []string            `json:"country"`
	Branch       []string            `json:"branch"`
	ServiceType  []string            `json:"service_type"`
	Trade        []string            `json:"trade"`
	CustomerName []string            `json:"customer_name"`
	Salesman     []string            `json:"salesman"`
	Agent        []string            `json:"agent"`
	Carrier      []string            `json:"carrier"`
	Tradelane    []string            `json:"tradelane"`
	Product      []string            `json:"product"`
	TOS          []string            `json:"tos"`
	ChartFilters domain.ChartFilters `json:"chartFilters"`
}

func (r KPIRequest) toFilterState() domain.FilterState {
	return domain.FilterState{
		Period:       r.Period,
		Country:      r.Country,
		Branch:       r.Branch,
		Service:      r.ServiceType,
		Trade:        r.Trade,
		Customer:     r.CustomerName,
		Salesman:     r.Salesman,
		Agent:        r.Agent,
		Carrier:      r.Carrier,
		Tradelane:    r.Tradelane,
		Product:      r.Product,
		TOS:          r.TOS,
		ChartFilters: r.ChartFilters,
	}
}

type SalesHandler struct {
	service   *service.SalesService
	uploadDir string
}

func NewSalesHandler(s *service.SalesService, uploadDir string) *SalesHandler {
	return &SalesHandler{service: s, uploadDir: uploadDir}
}

// GetKPIData handles POST /api/v1/sales/kpi.
func (h *SalesHandler) GetKPIData(c *gin.Context) {
	var req KPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	data, err := h.service.Dashboard(c.Request.Context(), req.toFilterState())
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetFilterOptions handles POST /api/v1/sales/kpi/filter-options. The body
// is accepted for parity with the KPI endpoint but the option lists always
// come from the unfiltered dataset.
func (h *SalesHandler) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.FilterOptions())
}

// UploadDataset handles POST /api/v1/sales/upload with a multipart file
// field named "file".
func (h *SalesHandler) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the 32MB upload limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	name := filepath.Base(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	count, err := h.service.IngestUpload(c.Request.Context(), name, data, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Keep a local copy next to the service for quick inspection. Failure
	// here does not fail the upload.
	if h.uploadDir != "" {
		localPath := filepath.Join(h.uploadDir, fmt.Sprintf("%d_%s", time.Now().UnixMilli(), name))
		if err := os.WriteFile(localPath, data, 0644); err != nil {
			log.Warn().Err(err).Str("path", localPath).Msg("failed to keep local upload copy")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "dataset uploaded successfully",
		"filename": name,
		"records":  count,
	})
}

// GetTemplate handles GET /api/v1/sales/template?format=xlsx|json and
// streams an empty dataset template for download.
func (h *SalesHandler) GetTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	switch format {
	case "xlsx":
		c.Header("Content-Disposition", `attachment; filename="sales_data_template.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := ingest.WriteXLSXTemplate(c.Writer); err != nil {
			log.Error().Err(err).Msg("failed to write xlsx template")
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	case "json":
		payload, err := ingest.JSONTemplate()
		if err != nil {
			log.Error().Err(err).Msg("failed to build json template")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="sales_data_template.json"`)
		c.Data(http.StatusOK, "application/json", payload)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported template format %q: use xlsx or json", format)})
	}
}
