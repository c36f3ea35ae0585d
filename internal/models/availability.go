package models

import "time"

// UnavailableReason classifies why a slot cannot be offered. The values are a
// stable wire contract consumed by calendar UIs.
type UnavailableReason string

const (
	ReasonAppointmentConflict UnavailableReason = "APPOINTMENT_CONFLICT"
	ReasonSalonClosed         UnavailableReason = "SALON_CLOSED"
	ReasonStaffOff            UnavailableReason = "STAFF_OFF"
	ReasonOutsideWorkingHours UnavailableReason = "OUTSIDE_WORKING_HOURS"
)

// Slot is one grid-aligned candidate start time with its computed
// availability. A slot list is a point-in-time snapshot of the calendar, not
// a hold: another booking may land on the same window at any moment, and the
// booking-commit path must re-validate inside its own transaction.
type Slot struct {
	StartLocal        string            `json:"startLocal"`
	EndLocal          string            `json:"endLocal"`
	StartUTC          time.Time         `json:"startUtc"`
	EndUTC            time.Time         `json:"endUtc"`
	Available         bool              `json:"available"`
	UnavailableReason UnavailableReason `json:"unavailableReason,omitempty"`
}
