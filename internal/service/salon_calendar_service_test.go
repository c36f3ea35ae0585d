package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

type fakeWorkingHoursRepo struct {
	rules   []models.WorkingHoursRule
	listErr error
	byDay   map[int]*models.WorkingHoursRule
	dayErr  error
}

func (f *fakeWorkingHoursRepo) ListByTenant(context.Context, string) ([]models.WorkingHoursRule, error) {
	return f.rules, f.listErr
}

func (f *fakeWorkingHoursRepo) GetByWeekday(_ context.Context, _ string, dayOfWeek int) (*models.WorkingHoursRule, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	rule, ok := f.byDay[dayOfWeek]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rule, nil
}

func TestSalonCalendarResolveWindow(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	t.Run("working day", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{byDay: map[int]*models.WorkingHoursRule{
			1: {DayOfWeek: 1, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00"},
		}}
		svc := NewSalonCalendarService(repo, nil)

		window, err := svc.ResolveSalonWindow(context.Background(), "salon-1", monday)
		require.NoError(t, err)
		assert.True(t, window.IsOpen)
		assert.Equal(t, timezone.MustClock("09:00"), window.Start)
		assert.Equal(t, timezone.MustClock("17:00"), window.End)
		assert.Equal(t, models.WindowSourceRule, window.Source)
	})

	t.Run("non-working day", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{byDay: map[int]*models.WorkingHoursRule{
			1: {DayOfWeek: 1, IsWorkingDay: false},
		}}
		svc := NewSalonCalendarService(repo, nil)

		window, err := svc.ResolveSalonWindow(context.Background(), "salon-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("missing row closes the day", func(t *testing.T) {
		svc := NewSalonCalendarService(&fakeWorkingHoursRepo{}, nil)

		window, err := svc.ResolveSalonWindow(context.Background(), "salon-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("invalid stored times close the day", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{byDay: map[int]*models.WorkingHoursRule{
			1: {DayOfWeek: 1, IsWorkingDay: true, StartTime: "17:00", EndTime: "09:00"},
		}}
		svc := NewSalonCalendarService(repo, nil)

		window, err := svc.ResolveSalonWindow(context.Background(), "salon-1", monday)
		require.NoError(t, err)
		assert.False(t, window.IsOpen)
	})

	t.Run("store failure surfaces as retryable", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{dayErr: errors.New("connection reset")}
		svc := NewSalonCalendarService(repo, nil)

		_, err := svc.ResolveSalonWindow(context.Background(), "salon-1", monday)
		require.Error(t, err)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrUnavailable.Code, appErr.Code)
	})
}

func TestSalonCalendarOverallEnvelope(t *testing.T) {
	t.Run("spans working days only", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{rules: []models.WorkingHoursRule{
			{DayOfWeek: 0, IsWorkingDay: false, StartTime: "00:00", EndTime: "23:59"},
			{DayOfWeek: 1, IsWorkingDay: true, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 2, IsWorkingDay: true, StartTime: "08:00", EndTime: "16:00"},
			{DayOfWeek: 6, IsWorkingDay: true, StartTime: "10:00", EndTime: "20:00"},
		}}
		svc := NewSalonCalendarService(repo, nil)

		envelope, err := svc.OverallEnvelope(context.Background(), "salon-1")
		require.NoError(t, err)
		assert.Equal(t, timezone.MustClock("08:00"), envelope.EarliestStart)
		assert.Equal(t, timezone.MustClock("20:00"), envelope.LatestEnd)
	})

	t.Run("no working days falls back", func(t *testing.T) {
		svc := NewSalonCalendarService(&fakeWorkingHoursRepo{}, nil)

		envelope, err := svc.OverallEnvelope(context.Background(), "salon-1")
		require.NoError(t, err)
		assert.Equal(t, fallbackEnvelope, envelope)
	})

	t.Run("invalid rows are skipped", func(t *testing.T) {
		repo := &fakeWorkingHoursRepo{rules: []models.WorkingHoursRule{
			{DayOfWeek: 1, IsWorkingDay: true, StartTime: "bogus", EndTime: "17:00"},
			{DayOfWeek: 2, IsWorkingDay: true, StartTime: "10:00", EndTime: "15:00"},
		}}
		svc := NewSalonCalendarService(repo, nil)

		envelope, err := svc.OverallEnvelope(context.Background(), "salon-1")
		require.NoError(t, err)
		assert.Equal(t, timezone.MustClock("10:00"), envelope.EarliestStart)
		assert.Equal(t, timezone.MustClock("15:00"), envelope.LatestEnd)
	})
}
