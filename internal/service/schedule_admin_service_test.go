package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
	appErrors "github.com/DesignCorporation/Beauty-sub004/pkg/errors"
	"github.com/DesignCorporation/Beauty-sub004/pkg/jobs"
)

type fakeWorkingHoursWriter struct {
	rules    []models.WorkingHoursRule
	replaced []models.WorkingHoursRule
	err      error
}

func (f *fakeWorkingHoursWriter) ListByTenant(context.Context, string) ([]models.WorkingHoursRule, error) {
	return f.rules, f.err
}

func (f *fakeWorkingHoursWriter) ReplaceWeek(_ context.Context, _ string, rules []models.WorkingHoursRule) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = rules
	return nil
}

type fakeStaffScheduleWriter struct {
	rules       []models.StaffScheduleRule
	exceptions  []models.ScheduleException
	overlapping []models.ScheduleException
	created     *models.ScheduleException
	deletedID   string
	err         error
}

func (f *fakeStaffScheduleWriter) ListRules(context.Context, string) ([]models.StaffScheduleRule, error) {
	return f.rules, f.err
}

func (f *fakeStaffScheduleWriter) ReplaceRules(_ context.Context, _ string, rules []models.StaffScheduleRule) error {
	if f.err != nil {
		return f.err
	}
	f.rules = rules
	return nil
}

func (f *fakeStaffScheduleWriter) ListExceptions(context.Context, string) ([]models.ScheduleException, error) {
	return f.exceptions, f.err
}

func (f *fakeStaffScheduleWriter) FindOverlappingExceptions(context.Context, string, time.Time, time.Time) ([]models.ScheduleException, error) {
	return f.overlapping, nil
}

func (f *fakeStaffScheduleWriter) CreateException(_ context.Context, exception *models.ScheduleException) error {
	if f.err != nil {
		return f.err
	}
	f.created = exception
	return nil
}

func (f *fakeStaffScheduleWriter) DeleteException(_ context.Context, _, exceptionID string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = exceptionID
	return nil
}

type fakeInvalidationQueue struct {
	enqueued []jobs.Job
	err      error
}

func (f *fakeInvalidationQueue) Enqueue(job jobs.Job) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

func fullWeek() ReplaceWeekRequest {
	days := make([]ScheduleDayRequest, 0, 7)
	for dow := 0; dow < 7; dow++ {
		day := ScheduleDayRequest{DayOfWeek: dow}
		if dow >= 1 && dow <= 5 {
			day.IsWorkingDay = true
			day.StartTime = "09:00"
			day.EndTime = "17:00"
		}
		days = append(days, day)
	}
	return ReplaceWeekRequest{Days: days}
}

func newAdminFixture() (*ScheduleAdminService, *fakeWorkingHoursWriter, *fakeStaffScheduleWriter, *fakeInvalidationQueue) {
	workingHours := &fakeWorkingHoursWriter{}
	staffSchedule := &fakeStaffScheduleWriter{}
	queue := &fakeInvalidationQueue{}
	svc := NewScheduleAdminService(workingHours, staffSchedule, &fakeStaffLookup{staff: &models.Staff{ID: "staff-1"}}, queue, nil, nil)
	return svc, workingHours, staffSchedule, queue
}

func TestScheduleAdminReplaceWorkingHours(t *testing.T) {
	svc, workingHours, _, queue := newAdminFixture()

	rules, err := svc.ReplaceWorkingHours(context.Background(), "salon-1", fullWeek())
	require.NoError(t, err)
	require.Len(t, rules, 7)
	assert.Equal(t, "salon-1", rules[0].TenantID)
	require.Len(t, workingHours.replaced, 7)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, JobTypeInvalidateAvailability, queue.enqueued[0].Type)
	assert.Equal(t, "salon-1", queue.enqueued[0].Payload)
}

func TestScheduleAdminReplaceWorkingHoursValidation(t *testing.T) {
	svc, _, _, queue := newAdminFixture()

	t.Run("wrong row count", func(t *testing.T) {
		week := fullWeek()
		week.Days = week.Days[:6]
		_, err := svc.ReplaceWorkingHours(context.Background(), "salon-1", week)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("duplicate weekday", func(t *testing.T) {
		week := fullWeek()
		week.Days[6].DayOfWeek = 0
		_, err := svc.ReplaceWorkingHours(context.Background(), "salon-1", week)
		require.Error(t, err)
	})

	t.Run("inverted window", func(t *testing.T) {
		week := fullWeek()
		week.Days[1].StartTime = "17:00"
		week.Days[1].EndTime = "09:00"
		_, err := svc.ReplaceWorkingHours(context.Background(), "salon-1", week)
		require.Error(t, err)
	})

	assert.Empty(t, queue.enqueued, "rejected writes must not invalidate the cache")
}

func TestScheduleAdminReplaceStaffRules(t *testing.T) {
	svc, _, staffSchedule, queue := newAdminFixture()

	rules, err := svc.ReplaceStaffRules(context.Background(), "salon-1", "staff-1", fullWeek())
	require.NoError(t, err)
	require.Len(t, rules, 7)
	assert.Equal(t, "staff-1", rules[0].StaffID)
	require.Len(t, staffSchedule.rules, 7)
	require.Len(t, queue.enqueued, 1)
}

func TestScheduleAdminCreateException(t *testing.T) {
	t.Run("day off", func(t *testing.T) {
		svc, _, staffSchedule, queue := newAdminFixture()

		exception, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart: "2025-07-01",
			DateRangeEnd:   "2025-07-14",
			Type:           "DAY_OFF",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ExceptionDayOff, exception.Type)
		assert.Equal(t, "staff-1", exception.StaffID)
		require.NotNil(t, staffSchedule.created)
		require.Len(t, queue.enqueued, 1)
	})

	t.Run("custom hours require both times", func(t *testing.T) {
		svc, _, _, _ := newAdminFixture()

		start := "10:00"
		_, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart:  "2025-07-01",
			DateRangeEnd:    "2025-07-01",
			Type:            "CUSTOM_HOURS",
			CustomStartTime: &start,
		})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("custom times rejected for day off", func(t *testing.T) {
		svc, _, _, _ := newAdminFixture()

		start := "10:00"
		_, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart:  "2025-07-01",
			DateRangeEnd:    "2025-07-01",
			Type:            "DAY_OFF",
			CustomStartTime: &start,
		})
		require.Error(t, err)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		svc, _, _, _ := newAdminFixture()

		_, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart: "2025-07-14",
			DateRangeEnd:   "2025-07-01",
			Type:           "SICK_LEAVE",
		})
		require.Error(t, err)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		svc, _, _, _ := newAdminFixture()

		_, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart: "2025-07-01",
			DateRangeEnd:   "2025-07-01",
			Type:           "VACATION",
		})
		require.Error(t, err)
	})

	t.Run("overlap with existing exception is accepted", func(t *testing.T) {
		svc, _, staffSchedule, _ := newAdminFixture()
		staffSchedule.overlapping = []models.ScheduleException{{ID: "existing"}}

		exception, err := svc.CreateException(context.Background(), "salon-1", "staff-1", CreateExceptionRequest{
			DateRangeStart: "2025-07-01",
			DateRangeEnd:   "2025-07-02",
			Type:           "SICK_LEAVE",
		})
		require.NoError(t, err)
		assert.NotNil(t, exception)
	})
}

func TestScheduleAdminListExceptions(t *testing.T) {
	svc, _, staffSchedule, _ := newAdminFixture()
	staffSchedule.exceptions = []models.ScheduleException{{ID: "exc-1", StaffID: "staff-1"}}

	exceptions, err := svc.ListExceptions(context.Background(), "salon-1", "staff-1")
	require.NoError(t, err)
	require.Len(t, exceptions, 1)
	assert.Equal(t, "exc-1", exceptions[0].ID)
}

func TestScheduleAdminDeleteException(t *testing.T) {
	svc, _, staffSchedule, queue := newAdminFixture()

	err := svc.DeleteException(context.Background(), "salon-1", "staff-1", "exc-1")
	require.NoError(t, err)
	assert.Equal(t, "exc-1", staffSchedule.deletedID)
	require.Len(t, queue.enqueued, 1)
}

func TestScheduleAdminEnqueueFailureDoesNotFailWrite(t *testing.T) {
	workingHours := &fakeWorkingHoursWriter{}
	queue := &fakeInvalidationQueue{err: assert.AnError}
	svc := NewScheduleAdminService(workingHours, &fakeStaffScheduleWriter{}, &fakeStaffLookup{staff: &models.Staff{ID: "staff-1"}}, queue, nil, nil)

	_, err := svc.ReplaceWorkingHours(context.Background(), "salon-1", fullWeek())
	require.NoError(t, err)
}
