package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

type fakeStaffScheduleRepo struct {
	rule       *models.StaffScheduleRule
	ruleErr    error
	exceptions []models.ScheduleException
	excErr     error
}

func (f *fakeStaffScheduleRepo) GetRuleByWeekday(context.Context, string, int) (*models.StaffScheduleRule, error) {
	if f.ruleErr != nil {
		return nil, f.ruleErr
	}
	if f.rule == nil {
		return nil, sql.ErrNoRows
	}
	return f.rule, nil
}

func (f *fakeStaffScheduleRepo) ListExceptionsCovering(context.Context, string, time.Time) ([]models.ScheduleException, error) {
	return f.exceptions, f.excErr
}

func strPtr(s string) *string { return &s }

func TestStaffScheduleResolverWeeklyRule(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	t.Run("working weekday", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{rule: &models.StaffScheduleRule{
			StaffID: "staff-1", DayOfWeek: 1, IsWorkingDay: true, StartTime: "10:00", EndTime: "18:00",
		}}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.True(t, window.IsOpen)
		assert.Equal(t, timezone.MustClock("10:00"), window.Start)
		assert.Equal(t, timezone.MustClock("18:00"), window.End)
		assert.Equal(t, models.WindowSourceRule, window.Source)
	})

	t.Run("no rule means not scheduled", func(t *testing.T) {
		resolver := NewStaffScheduleResolver(&fakeStaffScheduleRepo{}, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("non-working weekday", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{rule: &models.StaffScheduleRule{DayOfWeek: 1, IsWorkingDay: false}}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})
}

func TestStaffScheduleResolverExceptions(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	workingRule := &models.StaffScheduleRule{DayOfWeek: 1, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00"}

	t.Run("day off overrides a working rule", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{
			rule: workingRule,
			exceptions: []models.ScheduleException{{
				ID: "exc-1", Type: models.ExceptionDayOff,
				DateRangeStart: monday, DateRangeEnd: monday,
			}},
		}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
		assert.Equal(t, models.WindowSourceException, window.Source)
	})

	t.Run("sick leave closes the day", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{
			rule: workingRule,
			exceptions: []models.ScheduleException{{
				ID: "exc-1", Type: models.ExceptionSickLeave,
				DateRangeStart: monday, DateRangeEnd: monday,
			}},
		}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("custom hours replace the rule window", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{
			rule: workingRule,
			exceptions: []models.ScheduleException{{
				ID: "exc-1", Type: models.ExceptionCustomHours,
				DateRangeStart:  monday,
				DateRangeEnd:    monday,
				CustomStartTime: strPtr("12:00"),
				CustomEndTime:   strPtr("15:00"),
			}},
		}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.True(t, window.IsOpen)
		assert.Equal(t, timezone.MustClock("12:00"), window.Start)
		assert.Equal(t, timezone.MustClock("15:00"), window.End)
		assert.Equal(t, models.WindowSourceException, window.Source)
	})

	t.Run("custom hours without times close the day", func(t *testing.T) {
		repo := &fakeStaffScheduleRepo{
			rule: workingRule,
			exceptions: []models.ScheduleException{{
				ID: "exc-1", Type: models.ExceptionCustomHours,
				DateRangeStart: monday, DateRangeEnd: monday,
			}},
		}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("most recently created exception wins on overlap", func(t *testing.T) {
		// The repository orders by created_at descending; the head entry is
		// the newest.
		repo := &fakeStaffScheduleRepo{
			rule: workingRule,
			exceptions: []models.ScheduleException{
				{
					ID: "newer", Type: models.ExceptionCustomHours,
					DateRangeStart:  monday,
					DateRangeEnd:    monday,
					CustomStartTime: strPtr("13:00"),
					CustomEndTime:   strPtr("16:00"),
					CreatedAt:       time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				},
				{
					ID: "older", Type: models.ExceptionDayOff,
					DateRangeStart: monday,
					DateRangeEnd:   monday,
					CreatedAt:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				},
			},
		}
		resolver := NewStaffScheduleResolver(repo, nil)

		window, err := resolver.ResolveStaffWindow(context.Background(), "staff-1", monday)
		require.NoError(t, err)
		assert.True(t, window.IsOpen)
		assert.Equal(t, timezone.MustClock("13:00"), window.Start)
	})
}

func TestScheduleExceptionCovers(t *testing.T) {
	exception := models.ScheduleException{
		DateRangeStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		DateRangeEnd:   time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, exception.Covers(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, exception.Covers(time.Date(2025, 7, 14, 23, 0, 0, 0, time.UTC)))
	assert.False(t, exception.Covers(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, exception.Covers(time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)))
}
