package routes

import (
	"github.com/gin-gonic/gin"

	"wavify/internal/api/v1/handlers"
	"wavify/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	ConversionService services.ConversionService
	RecordService     services.RecordService
	HealthService     services.HealthService
	MaxUploadBytes    int64
}

// RegisterRoutes registers the conversion endpoint, health and the v1 API.
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	conversionHandler := handlers.NewConversionHandler(container.ConversionService, container.MaxUploadBytes)
	router.POST("/convert", conversionHandler.Convert)

	if container.HealthService != nil {
		router.GET("/health", handlers.NewHealthHandler(container.HealthService).Check)
	}

	v1 := router.Group("/api/v1")
	if container.RecordService != nil {
		recordHandler := handlers.NewRecordHandler(container.RecordService)
		v1.GET("/conversions", recordHandler.List)
	}
}
