package models

import "time"

// Appointment statuses. Only non-cancelled appointments block slots.
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusCanceled  = "CANCELED"
)

// Appointment is an existing booking. It is read-only to the availability
// engine; the booking flow owns its lifecycle.
type Appointment struct {
	ID       string    `db:"id" json:"id"`
	TenantID string    `db:"tenant_id" json:"tenant_id"`
	StaffID  string    `db:"staff_id" json:"staff_id"`
	StartAt  time.Time `db:"start_at" json:"start_at"`
	EndAt    time.Time `db:"end_at" json:"end_at"`
	Status   string    `db:"status" json:"status"`
}

// Overlaps reports half-open interval intersection with [start, end).
func (a Appointment) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && a.EndAt.After(start)
}
