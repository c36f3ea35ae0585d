package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

// AppointmentRepository reads existing bookings for conflict checks. The
// availability engine never writes appointments.
type AppointmentRepository struct {
	db *sqlx.DB
}

// NewAppointmentRepository creates a new appointment repository.
func NewAppointmentRepository(db *sqlx.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// FindOverlaps returns non-cancelled appointments intersecting the half-open
// window [windowStart, windowEnd). An empty staffID returns all staff; scope
// narrowing stays the caller's decision.
func (r *AppointmentRepository) FindOverlaps(ctx context.Context, tenantID, staffID string, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	query := `SELECT id, tenant_id, staff_id, start_at, end_at, status
FROM appointments
WHERE tenant_id = $1 AND status <> $2 AND start_at < $3 AND end_at > $4`
	args := []interface{}{tenantID, models.AppointmentStatusCanceled, windowEnd, windowStart}

	if staffID != "" {
		query += " AND staff_id = $5"
		args = append(args, staffID)
	}
	query += " ORDER BY start_at ASC"

	var appointments []models.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("find overlapping appointments: %w", err)
	}
	return appointments, nil
}
