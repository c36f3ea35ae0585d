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

type workingHoursRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.WorkingHoursRule, error)
	GetByWeekday(ctx context.Context, tenantID string, dayOfWeek int) (*models.WorkingHoursRule, error)
}

// Fallback envelope used when a salon has no working days configured at all.
var fallbackEnvelope = models.HoursEnvelope{
	EarliestStart: timezone.Clock(9 * 60),
	LatestEnd:     timezone.Clock(17 * 60),
}

// SalonCalendarService resolves the salon's own working window per date and
// the overall weekly envelope used to size a rendered time grid. The salon
// table has no exception layer; salon-level holidays belong to an external
// collaborator.
type SalonCalendarService struct {
	repo   workingHoursRepository
	logger *zap.Logger
}

// NewSalonCalendarService constructs the service.
func NewSalonCalendarService(repo workingHoursRepository, logger *zap.Logger) *SalonCalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalonCalendarService{repo: repo, logger: logger}
}

// ResolveSalonWindow returns the salon's working window for a calendar date.
// A missing weekday row or an unparseable stored time resolves to closed:
// absence of data is not availability.
func (s *SalonCalendarService) ResolveSalonWindow(ctx context.Context, tenantID string, date time.Time) (models.WorkingWindow, error) {
	rule, err := s.repo.GetByWeekday(ctx, tenantID, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("salon has no working-hours row for weekday",
				zap.String("tenant_id", tenantID),
				zap.Int("day_of_week", int(date.Weekday())))
			return models.WorkingWindow{Source: models.WindowSourceRule}, nil
		}
		return models.WorkingWindow{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read salon working hours")
	}

	if !rule.IsWorkingDay {
		return models.WorkingWindow{Source: models.WindowSourceRule}, nil
	}

	window, ok := parseClockWindow(rule.StartTime, rule.EndTime)
	if !ok {
		s.logger.Warn("salon working-hours row has invalid times, treating day as closed",
			zap.String("tenant_id", tenantID),
			zap.Int("day_of_week", rule.DayOfWeek),
			zap.String("start_time", rule.StartTime),
			zap.String("end_time", rule.EndTime))
		return models.WorkingWindow{Source: models.WindowSourceRule}, nil
	}
	window.Source = models.WindowSourceRule
	return window, nil
}

// OverallEnvelope computes the min start / max end across working days only.
// A salon with zero working days gets a fixed fallback envelope so display
// grids always have bounds.
func (s *SalonCalendarService) OverallEnvelope(ctx context.Context, tenantID string) (models.HoursEnvelope, error) {
	rules, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return models.HoursEnvelope{}, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to read salon working hours")
	}

	envelope := models.HoursEnvelope{}
	found := false
	for _, rule := range rules {
		if !rule.IsWorkingDay {
			continue
		}
		window, ok := parseClockWindow(rule.StartTime, rule.EndTime)
		if !ok {
			s.logger.Warn("skipping invalid working-hours row in envelope",
				zap.String("tenant_id", tenantID),
				zap.Int("day_of_week", rule.DayOfWeek))
			continue
		}
		if !found || window.Start < envelope.EarliestStart {
			envelope.EarliestStart = window.Start
		}
		if !found || window.End > envelope.LatestEnd {
			envelope.LatestEnd = window.End
		}
		found = true
	}

	if !found {
		return fallbackEnvelope, nil
	}
	return envelope, nil
}
