package models

import (
	"time"

	"github.com/DesignCorporation/Beauty-sub004/pkg/timezone"
)

// WorkingHoursRule is one row of the salon's weekly working-hours table,
// one per weekday (0 = Sunday .. 6 = Saturday). Start and end are local
// wall-clock values in the salon's timezone; they are ignored when
// IsWorkingDay is false.
type WorkingHoursRule struct {
	TenantID     string    `db:"tenant_id" json:"tenant_id"`
	DayOfWeek    int       `db:"day_of_week" json:"day_of_week"`
	IsWorkingDay bool      `db:"is_working_day" json:"is_working_day"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StaffScheduleRule is a staff member's default recurring availability for a
// weekday, stored independently of the salon's own hours.
type StaffScheduleRule struct {
	StaffID      string    `db:"staff_id" json:"staff_id"`
	DayOfWeek    int       `db:"day_of_week" json:"day_of_week"`
	IsWorkingDay bool      `db:"is_working_day" json:"is_working_day"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ExceptionType enumerates staff schedule exception kinds.
type ExceptionType string

const (
	ExceptionDayOff      ExceptionType = "DAY_OFF"
	ExceptionSickLeave   ExceptionType = "SICK_LEAVE"
	ExceptionCustomHours ExceptionType = "CUSTOM_HOURS"
)

// ScheduleException is a date-ranged override of a staff member's recurring
// weekly rule. DAY_OFF and SICK_LEAVE close the day entirely; CUSTOM_HOURS
// replaces the rule's window with the custom times for every covered date.
type ScheduleException struct {
	ID              string        `db:"id" json:"id"`
	StaffID         string        `db:"staff_id" json:"staff_id"`
	DateRangeStart  time.Time     `db:"date_range_start" json:"date_range_start"`
	DateRangeEnd    time.Time     `db:"date_range_end" json:"date_range_end"`
	Type            ExceptionType `db:"type" json:"type"`
	CustomStartTime *string       `db:"custom_start_time" json:"custom_start_time,omitempty"`
	CustomEndTime   *string       `db:"custom_end_time" json:"custom_end_time,omitempty"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
}

// Covers reports whether the exception's date range contains the given
// calendar date (inclusive on both ends, compared by date only).
func (e ScheduleException) Covers(date time.Time) bool {
	day := dateOrdinal(date)
	return day >= dateOrdinal(e.DateRangeStart) && day <= dateOrdinal(e.DateRangeEnd)
}

func dateOrdinal(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

// WindowSource tells which layer produced a resolved working window.
type WindowSource string

const (
	WindowSourceRule      WindowSource = "RULE"
	WindowSourceException WindowSource = "EXCEPTION"
)

// WorkingWindow is the effective local working-hours range of a salon or a
// staff member on a specific date. Start/End are meaningful only when IsOpen.
type WorkingWindow struct {
	IsOpen bool
	Start  timezone.Clock
	End    timezone.Clock
	Source WindowSource
}

// HoursEnvelope bounds a display grid: the earliest start and latest end over
// all configured working days of a salon.
type HoursEnvelope struct {
	EarliestStart timezone.Clock `json:"earliest_start"`
	LatestEnd     timezone.Clock `json:"latest_end"`
}
