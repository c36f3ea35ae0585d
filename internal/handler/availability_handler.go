package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DesignCorporation/Beauty-sub004/internal/middleware"
	"github.com/DesignCorporation/Beauty-sub004/internal/service"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/response"
)

type availabilityService interface {
	GetAvailableSlots(ctx context.Context, req service.GetAvailabilityRequest) (*service.AvailabilityResult, error)
}

type daySheetRenderer interface {
	RenderDaySheet(ctx context.Context, req service.GetAvailabilityRequest, format string) (*service.ExportedSheet, error)
}

// metricsRecorder is implemented by the metrics service; nil disables
// recording.
type metricsRecorder interface {
	ObserveAvailability(duration time.Duration, slotCount int, cacheHit, degraded bool)
}

// AvailabilityHandler wires the availability query to HTTP endpoints.
type AvailabilityHandler struct {
	query   availabilityService
	export  daySheetRenderer
	metrics metricsRecorder
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(query availabilityService, export daySheetRenderer, metrics metricsRecorder) *AvailabilityHandler {
	return &AvailabilityHandler{query: query, export: export, metrics: metrics}
}

// Get godoc
// @Summary Labeled slot availability for one date
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD, salon-local)"
// @Param serviceDurationMinutes query int true "Service duration in minutes"
// @Param staffId query string false "Restrict to one staff member"
// @Param bufferMinutes query int false "Cleanup buffer appended to each slot"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	result, err := h.query.GetAvailableSlots(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveAvailability(time.Since(start), len(result.Response.Slots), result.CacheHit, result.TimezoneFallback)
	}

	middleware.SetCacheHit(c, result.CacheHit)
	middleware.SetTimezoneFallback(c, result.TimezoneFallback)
	response.JSON(c, http.StatusOK, result.Response, nil, middleware.ExtractMeta(c))
}

// Export godoc
// @Summary Printable day sheet of the labeled slot list
// @Tags Availability
// @Produce text/csv
// @Produce application/pdf
// @Param date query string true "Date (YYYY-MM-DD, salon-local)"
// @Param serviceDurationMinutes query int true "Service duration in minutes"
// @Param staffId query string false "Restrict to one staff member"
// @Param bufferMinutes query int false "Cleanup buffer appended to each slot"
// @Param format query string true "csv or pdf"
// @Success 200 {file} binary
// @Router /availability/export [get]
func (h *AvailabilityHandler) Export(c *gin.Context) {
	req, err := h.parseRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = "csv"
	}

	sheet, err := h.export.RenderDaySheet(c.Request.Context(), req, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+sheet.Filename+`"`)
	c.Data(http.StatusOK, sheet.ContentType, sheet.Content)
}

func (h *AvailabilityHandler) parseRequest(c *gin.Context) (service.GetAvailabilityRequest, error) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		return service.GetAvailabilityRequest{}, appErrors.ErrUnauthorized
	}

	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return service.GetAvailabilityRequest{}, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}

	durationStr := strings.TrimSpace(c.Query("serviceDurationMinutes"))
	if durationStr == "" {
		return service.GetAvailabilityRequest{}, appErrors.Clone(appErrors.ErrValidation, "serviceDurationMinutes is required")
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		return service.GetAvailabilityRequest{}, appErrors.Clone(appErrors.ErrValidation, "serviceDurationMinutes must be a positive integer")
	}

	buffer := 0
	if bufferStr := strings.TrimSpace(c.Query("bufferMinutes")); bufferStr != "" {
		buffer, err = strconv.Atoi(bufferStr)
		if err != nil || buffer < 0 {
			return service.GetAvailabilityRequest{}, appErrors.Clone(appErrors.ErrValidation, "bufferMinutes must be a non-negative integer")
		}
	}

	return service.GetAvailabilityRequest{
		TenantID:               tenantID,
		Date:                   date,
		ServiceDurationMinutes: duration,
		StaffID:                strings.TrimSpace(c.Query("staffId")),
		BufferMinutes:          buffer,
	}, nil
}
