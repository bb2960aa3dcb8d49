package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wavify/internal/api/middleware"
	"wavify/internal/api/v1/dto"
	"wavify/internal/api/v1/services"
)

// RecordHandler serves conversion records.
type RecordHandler struct {
	service services.RecordService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(service services.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// List handles GET /api/v1/conversions
//
// @Summary List conversion records
// @Description Lists recorded conversion attempts, newest first
// @Tags conversions
// @Produce json
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param offset query int false "Records to skip" default(0) minimum(0)
// @Success 200 {object} dto.ConversionListResponse "Page of conversion records"
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Failure 503 {object} errors.APIError "Metadata store unavailable"
// @Header 200 {string} X-Total-Count "Number of records in this page"
// @Router /api/v1/conversions [get]
func (h *RecordHandler) List(c *gin.Context) {
	var query dto.ListConversionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListConversions(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Count))
	c.JSON(http.StatusOK, response)
}
