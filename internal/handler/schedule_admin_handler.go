package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DesignCorporation/Beauty-sub004/internal/dto"
	"github.com/DesignCorporation/Beauty-sub004/internal/middleware"
	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	"github.com/DesignCorporation/Beauty-sub004/internal/service"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/response"
)

type scheduleAdminService interface {
	ListWorkingHours(ctx context.Context, tenantID string) ([]models.WorkingHoursRule, error)
	ReplaceWorkingHours(ctx context.Context, tenantID string, req service.ReplaceWeekRequest) ([]models.WorkingHoursRule, error)
	GetStaffSchedule(ctx context.Context, tenantID, staffID string) (*dto.StaffScheduleResponse, error)
	ReplaceStaffRules(ctx context.Context, tenantID, staffID string, req service.ReplaceWeekRequest) ([]models.StaffScheduleRule, error)
	ListExceptions(ctx context.Context, tenantID, staffID string) ([]models.ScheduleException, error)
	CreateException(ctx context.Context, tenantID, staffID string, req service.CreateExceptionRequest) (*models.ScheduleException, error)
	DeleteException(ctx context.Context, tenantID, staffID, exceptionID string) error
}

// ScheduleAdminHandler wires schedule maintenance to HTTP endpoints.
type ScheduleAdminHandler struct {
	service scheduleAdminService
}

// NewScheduleAdminHandler constructs the handler.
func NewScheduleAdminHandler(service scheduleAdminService) *ScheduleAdminHandler {
	return &ScheduleAdminHandler{service: service}
}

// ListWorkingHours godoc
// @Summary Salon weekly working hours
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/working-hours [get]
func (h *ScheduleAdminHandler) ListWorkingHours(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	rules, err := h.service.ListWorkingHours(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// ReplaceWorkingHours godoc
// @Summary Replace the salon's weekly working hours
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.ReplaceWeekRequest true "Seven weekday rows"
// @Success 200 {object} response.Envelope
// @Router /schedule/working-hours [put]
func (h *ScheduleAdminHandler) ReplaceWorkingHours(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	rules, err := h.service.ReplaceWorkingHours(c.Request.Context(), tenantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// GetStaffSchedule godoc
// @Summary Staff weekly rules and exceptions
// @Tags Schedule
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/staff/{id}/rules [get]
func (h *ScheduleAdminHandler) GetStaffSchedule(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	staffID := strings.TrimSpace(c.Param("id"))
	if staffID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staff id is required"))
		return
	}
	schedule, err := h.service.GetStaffSchedule(c.Request.Context(), tenantID, staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ReplaceStaffRules godoc
// @Summary Replace a staff member's weekly rules
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payload body service.ReplaceWeekRequest true "Seven weekday rows"
// @Success 200 {object} response.Envelope
// @Router /schedule/staff/{id}/rules [put]
func (h *ScheduleAdminHandler) ReplaceStaffRules(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	staffID := strings.TrimSpace(c.Param("id"))
	if staffID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staff id is required"))
		return
	}
	var req service.ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	rules, err := h.service.ReplaceStaffRules(c.Request.Context(), tenantID, staffID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, nil)
}

// ListExceptions godoc
// @Summary Schedule exceptions of a staff member
// @Tags Schedule
// @Produce json
// @Param id path string true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/staff/{id}/exceptions [get]
func (h *ScheduleAdminHandler) ListExceptions(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	staffID := strings.TrimSpace(c.Param("id"))
	if staffID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staff id is required"))
		return
	}
	exceptions, err := h.service.ListExceptions(c.Request.Context(), tenantID, staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exceptions, nil)
}

// CreateException godoc
// @Summary Register a schedule exception for a staff member
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payload body service.CreateExceptionRequest true "Exception"
// @Success 201 {object} response.Envelope
// @Router /schedule/staff/{id}/exceptions [post]
func (h *ScheduleAdminHandler) CreateException(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	staffID := strings.TrimSpace(c.Param("id"))
	if staffID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staff id is required"))
		return
	}
	var req service.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	exception, err := h.service.CreateException(c.Request.Context(), tenantID, staffID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exception)
}

// DeleteException godoc
// @Summary Remove a schedule exception
// @Tags Schedule
// @Param id path string true "Staff ID"
// @Param exceptionId path string true "Exception ID"
// @Success 204 {string} string ""
// @Router /schedule/staff/{id}/exceptions/{exceptionId} [delete]
func (h *ScheduleAdminHandler) DeleteException(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	if tenantID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	staffID := strings.TrimSpace(c.Param("id"))
	exceptionID := strings.TrimSpace(c.Param("exceptionId"))
	if staffID == "" || exceptionID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "staff id and exception id are required"))
		return
	}
	if err := h.service.DeleteException(c.Request.Context(), tenantID, staffID, exceptionID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
