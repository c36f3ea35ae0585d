package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

type staffScheduleReader interface {
	GetRuleByWeekday(ctx context.Context, staffID string, dayOfWeek int) (*models.StaffScheduleRule, error)
	ListExceptionsCovering(ctx context.Context, staffID string, date time.Time) ([]models.ScheduleException, error)
}

// StaffScheduleResolver computes a staff member's effective working window
// for a date by applying date-ranged exceptions over the recurring weekly
// rule. Exceptions take strict priority for any date they cover.
type StaffScheduleResolver struct {
	repo   staffScheduleReader
	logger *zap.Logger
}

// NewStaffScheduleResolver constructs the resolver.
func NewStaffScheduleResolver(repo staffScheduleReader, logger *zap.Logger) *StaffScheduleResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffScheduleResolver{repo: repo, logger: logger}
}

// ResolveStaffWindow returns the effective window for staffID on date.
// Overlapping exceptions are a data-integrity anomaly; the most recently
// created one wins deterministically and the occurrence is logged.
func (s *StaffScheduleResolver) ResolveStaffWindow(ctx context.Context, staffID string, date time.Time) (models.WorkingWindow, error) {
	exceptions, err := s.repo.ListExceptionsCovering(ctx, staffID, date)
	if err != nil {
		return models.WorkingWindow{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read schedule exceptions")
	}

	if len(exceptions) > 0 {
		if len(exceptions) > 1 {
			s.logger.Warn("overlapping schedule exceptions, most recent wins",
				zap.String("staff_id", staffID),
				zap.Time("date", date),
				zap.Int("count", len(exceptions)))
		}
		return s.applyException(staffID, exceptions[0]), nil
	}

	rule, err := s.repo.GetRuleByWeekday(ctx, staffID, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No rule row for the weekday means the staff member is
			// not scheduled, not that hours are unknown.
			return models.WorkingWindow{Source: models.WindowSourceRule}, nil
		}
		return models.WorkingWindow{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read staff schedule rule")
	}

	if !rule.IsWorkingDay {
		return models.WorkingWindow{Source: models.WindowSourceRule}, nil
	}

	window, ok := parseClockWindow(rule.StartTime, rule.EndTime)
	if !ok {
		s.logger.Warn("staff schedule rule has invalid times, treating day as closed",
			zap.String("staff_id", staffID),
			zap.Int("day_of_week", rule.DayOfWeek))
		return models.WorkingWindow{Source: models.WindowSourceRule}, nil
	}
	window.Source = models.WindowSourceRule
	return window, nil
}

func (s *StaffScheduleResolver) applyException(staffID string, exception models.ScheduleException) models.WorkingWindow {
	switch exception.Type {
	case models.ExceptionCustomHours:
		if exception.CustomStartTime == nil || exception.CustomEndTime == nil {
			s.logger.Warn("custom-hours exception missing times, treating day as closed",
				zap.String("staff_id", staffID),
				zap.String("exception_id", exception.ID))
			return models.WorkingWindow{Source: models.WindowSourceException}
		}
		window, ok := parseClockWindow(*exception.CustomStartTime, *exception.CustomEndTime)
		if !ok {
			s.logger.Warn("custom-hours exception has invalid times, treating day as closed",
				zap.String("staff_id", staffID),
				zap.String("exception_id", exception.ID))
			return models.WorkingWindow{Source: models.WindowSourceException}
		}
		window.Source = models.WindowSourceException
		return window
	default:
		// DAY_OFF and SICK_LEAVE fully close the day.
		return models.WorkingWindow{Source: models.WindowSourceException}
	}
}

func parseClockWindow(startRaw, endRaw string) (models.WorkingWindow, bool) {
	start, err := timezone.ParseClock(startRaw)
	if err != nil {
		return models.WorkingWindow{}, false
	}
	end, err := timezone.ParseClock(endRaw)
	if err != nil {
		return models.WorkingWindow{}, false
	}
	if start >= end {
		return models.WorkingWindow{}, false
	}
	return models.WorkingWindow{IsOpen: true, Start: start, End: end}, true
}
