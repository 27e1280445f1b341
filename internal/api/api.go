// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/newagesw/sales-bi/backend-go/internal/api/handlers"
	"github.com/newagesw/sales-bi/backend-go/internal/api/middleware"
	"github.com/newagesw/sales-bi/backend-go/internal/presets"
	"github.com/newagesw/sales-bi/backend-go/internal/service"
)

type Services struct {
	SalesService *service.SalesService
	PresetStore  presets.Store
	UploadDir    string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		errorResponse(c, http.StatusNotFound, "route not found")
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.SalesService != nil {
			salesHandler := handlers.NewSalesHandler(services.SalesService, services.UploadDir)
			salesGroup := apiGroup.Group("/sales")
			{
				salesGroup.POST("/kpi", salesHandler.GetKPIData)
				salesGroup.POST("/kpi/filter-options", salesHandler.GetFilterOptions)
				salesGroup.POST("/upload", salesHandler.UploadDataset)
				salesGroup.GET("/template", salesHandler.GetTemplate)
			}

			if services.PresetStore != nil {
				presetHandler := handlers.NewPresetHandler(services.PresetStore)
				presetGroup := salesGroup.Group("/presets")
				{
					presetGroup.GET("", presetHandler.ListPresets)
					presetGroup.POST("", presetHandler.SavePreset)
					presetGroup.DELETE("/:id", presetHandler.DeletePreset)
					presetGroup.PUT("/:id/name", presetHandler.RenamePreset)
					presetGroup.PUT("/:id/default", presetHandler.SetDefaultPreset)
				}
			}
		}
	}

	return router
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
