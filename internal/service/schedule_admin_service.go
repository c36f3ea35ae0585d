package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DesignCorporation/Beauty-sub004/internal/dto"
	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/jobs"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

// JobTypeInvalidateAvailability names the cache-invalidation job enqueued
// after every schedule write.
const JobTypeInvalidateAvailability = "availability_cache_invalidate"

type workingHoursWriter interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.WorkingHoursRule, error)
	ReplaceWeek(ctx context.Context, tenantID string, rules []models.WorkingHoursRule) error
}

type staffScheduleWriter interface {
	ListRules(ctx context.Context, staffID string) ([]models.StaffScheduleRule, error)
	ReplaceRules(ctx context.Context, staffID string, rules []models.StaffScheduleRule) error
	ListExceptions(ctx context.Context, staffID string) ([]models.ScheduleException, error)
	FindOverlappingExceptions(ctx context.Context, staffID string, rangeStart, rangeEnd time.Time) ([]models.ScheduleException, error)
	CreateException(ctx context.Context, exception *models.ScheduleException) error
	DeleteException(ctx context.Context, staffID, exceptionID string) error
}

type invalidationQueue interface {
	Enqueue(job jobs.Job) error
}

// ScheduleDayRequest is one weekday row of a weekly schedule table.
type ScheduleDayRequest struct {
	DayOfWeek    int    `json:"day_of_week" validate:"gte=0,lte=6"`
	IsWorkingDay bool   `json:"is_working_day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// ReplaceWeekRequest replaces a full weekly table in one call.
type ReplaceWeekRequest struct {
	Days []ScheduleDayRequest `json:"days" validate:"required,len=7,dive"`
}

// CreateExceptionRequest registers a date-ranged override for a staff member.
type CreateExceptionRequest struct {
	DateRangeStart  string  `json:"date_range_start" validate:"required"`
	DateRangeEnd    string  `json:"date_range_end" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=DAY_OFF SICK_LEAVE CUSTOM_HOURS"`
	CustomStartTime *string `json:"custom_start_time"`
	CustomEndTime   *string `json:"custom_end_time"`
}

// ScheduleAdminService maintains the schedule read model the availability
// engine consumes: salon weekly hours, staff weekly rules and staff
// exceptions. Every successful write queues a tenant-wide snapshot-cache
// invalidation.
type ScheduleAdminService struct {
	workingHours  workingHoursWriter
	staffSchedule staffScheduleWriter
	staff         staffReader
	queue         invalidationQueue
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewScheduleAdminService constructs the service.
func NewScheduleAdminService(workingHours workingHoursWriter, staffSchedule staffScheduleWriter, staff staffReader, queue invalidationQueue, validate *validator.Validate, logger *zap.Logger) *ScheduleAdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleAdminService{
		workingHours:  workingHours,
		staffSchedule: staffSchedule,
		staff:         staff,
		queue:         queue,
		validator:     validate,
		logger:        logger,
	}
}

// ListWorkingHours returns the salon's weekly table.
func (s *ScheduleAdminService) ListWorkingHours(ctx context.Context, tenantID string) ([]models.WorkingHoursRule, error) {
	rules, err := s.workingHours.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to list working hours")
	}
	return rules, nil
}

// ReplaceWorkingHours replaces the salon's weekly table.
func (s *ScheduleAdminService) ReplaceWorkingHours(ctx context.Context, tenantID string, req ReplaceWeekRequest) ([]models.WorkingHoursRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid working hours payload")
	}
	if err := validateWeek(req.Days); err != nil {
		return nil, err
	}

	rules := make([]models.WorkingHoursRule, 0, len(req.Days))
	for _, day := range req.Days {
		rules = append(rules, models.WorkingHoursRule{
			TenantID:     tenantID,
			DayOfWeek:    day.DayOfWeek,
			IsWorkingDay: day.IsWorkingDay,
			StartTime:    day.StartTime,
			EndTime:      day.EndTime,
		})
	}

	if err := s.workingHours.ReplaceWeek(ctx, tenantID, rules); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace working hours")
	}
	s.invalidate(tenantID)
	return rules, nil
}

// GetStaffSchedule returns a staff member's weekly rules and exceptions.
func (s *ScheduleAdminService) GetStaffSchedule(ctx context.Context, tenantID, staffID string) (*dto.StaffScheduleResponse, error) {
	if _, err := s.staff.FindByID(ctx, tenantID, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
	}

	rules, err := s.staffSchedule.ListRules(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to list staff rules")
	}
	exceptions, err := s.staffSchedule.ListExceptions(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to list exceptions")
	}
	return &dto.StaffScheduleResponse{StaffID: staffID, Rules: rules, Exceptions: exceptions}, nil
}

// ReplaceStaffRules replaces a staff member's weekly table.
func (s *ScheduleAdminService) ReplaceStaffRules(ctx context.Context, tenantID, staffID string, req ReplaceWeekRequest) ([]models.StaffScheduleRule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff schedule payload")
	}
	if err := validateWeek(req.Days); err != nil {
		return nil, err
	}
	if _, err := s.staff.FindByID(ctx, tenantID, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
	}

	rules := make([]models.StaffScheduleRule, 0, len(req.Days))
	for _, day := range req.Days {
		rules = append(rules, models.StaffScheduleRule{
			StaffID:      staffID,
			DayOfWeek:    day.DayOfWeek,
			IsWorkingDay: day.IsWorkingDay,
			StartTime:    day.StartTime,
			EndTime:      day.EndTime,
		})
	}

	if err := s.staffSchedule.ReplaceRules(ctx, staffID, rules); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace staff rules")
	}
	s.invalidate(tenantID)
	return rules, nil
}

// ListExceptions returns all exceptions of a staff member.
func (s *ScheduleAdminService) ListExceptions(ctx context.Context, tenantID, staffID string) ([]models.ScheduleException, error) {
	if _, err := s.staff.FindByID(ctx, tenantID, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
	}
	exceptions, err := s.staffSchedule.ListExceptions(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to list exceptions")
	}
	return exceptions, nil
}

// CreateException registers a schedule exception. Overlaps with existing
// exceptions are accepted but logged: the resolver breaks ties
// deterministically by creation time.
func (s *ScheduleAdminService) CreateException(ctx context.Context, tenantID, staffID string, req CreateExceptionRequest) (*models.ScheduleException, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}

	rangeStart, err := time.Parse(dateLayout, req.DateRangeStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_range_start must be YYYY-MM-DD")
	}
	rangeEnd, err := time.Parse(dateLayout, req.DateRangeEnd)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_range_end must be YYYY-MM-DD")
	}
	if rangeEnd.Before(rangeStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_range_end must be on or after date_range_start")
	}

	exceptionType := models.ExceptionType(req.Type)
	if exceptionType == models.ExceptionCustomHours {
		if req.CustomStartTime == nil || req.CustomEndTime == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "custom hours require both custom_start_time and custom_end_time")
		}
		start, err := timezone.ParseClock(*req.CustomStartTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "custom_start_time must be HH:mm")
		}
		end, err := timezone.ParseClock(*req.CustomEndTime)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "custom_end_time must be HH:mm")
		}
		if start >= end {
			return nil, appErrors.Clone(appErrors.ErrValidation, "custom_start_time must be before custom_end_time")
		}
	} else if req.CustomStartTime != nil || req.CustomEndTime != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "custom times are only valid for CUSTOM_HOURS exceptions")
	}

	if _, err := s.staff.FindByID(ctx, tenantID, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
	}

	overlapping, err := s.staffSchedule.FindOverlappingExceptions(ctx, staffID, rangeStart, rangeEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to check existing exceptions")
	}
	if len(overlapping) > 0 {
		s.logger.Warn("new exception overlaps existing ones",
			zap.String("staff_id", staffID),
			zap.String("range_start", req.DateRangeStart),
			zap.String("range_end", req.DateRangeEnd),
			zap.Int("overlapping", len(overlapping)))
	}

	exception := &models.ScheduleException{
		StaffID:         staffID,
		DateRangeStart:  rangeStart,
		DateRangeEnd:    rangeEnd,
		Type:            exceptionType,
		CustomStartTime: req.CustomStartTime,
		CustomEndTime:   req.CustomEndTime,
	}
	if err := s.staffSchedule.CreateException(ctx, exception); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exception")
	}
	s.invalidate(tenantID)
	return exception, nil
}

// DeleteException removes a staff exception.
func (s *ScheduleAdminService) DeleteException(ctx context.Context, tenantID, staffID, exceptionID string) error {
	if _, err := s.staff.FindByID(ctx, tenantID, staffID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "staff member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to load staff member")
	}
	if err := s.staffSchedule.DeleteException(ctx, staffID, exceptionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exception")
	}
	s.invalidate(tenantID)
	return nil
}

func (s *ScheduleAdminService) invalidate(tenantID string) {
	if s.queue == nil {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: JobTypeInvalidateAvailability, Payload: tenantID}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue cache invalidation", zap.String("tenant_id", tenantID), zap.Error(err))
	}
}

func validateWeek(days []ScheduleDayRequest) error {
	seen := make(map[int]bool, len(days))
	for _, day := range days {
		if seen[day.DayOfWeek] {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate row for weekday %d", day.DayOfWeek))
		}
		seen[day.DayOfWeek] = true
		if !day.IsWorkingDay {
			continue
		}
		start, err := timezone.ParseClock(day.StartTime)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("weekday %d: start_time must be HH:mm", day.DayOfWeek))
		}
		end, err := timezone.ParseClock(day.EndTime)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("weekday %d: end_time must be HH:mm", day.DayOfWeek))
		}
		if start >= end {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("weekday %d: start_time must be before end_time", day.DayOfWeek))
		}
	}
	return nil
}
