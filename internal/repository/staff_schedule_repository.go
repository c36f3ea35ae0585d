package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

// StaffScheduleRepository persists staff weekly rules and date-ranged
// exceptions.
type StaffScheduleRepository struct {
	db *sqlx.DB
}

// NewStaffScheduleRepository creates a new staff schedule repository.
func NewStaffScheduleRepository(db *sqlx.DB) *StaffScheduleRepository {
	return &StaffScheduleRepository{db: db}
}

// GetRuleByWeekday loads a staff member's rule for one weekday. Returns
// sql.ErrNoRows when the weekday has no row.
func (r *StaffScheduleRepository) GetRuleByWeekday(ctx context.Context, staffID string, dayOfWeek int) (*models.StaffScheduleRule, error) {
	const query = `SELECT staff_id, day_of_week, is_working_day, start_time, end_time, updated_at
FROM staff_schedule_rules WHERE staff_id = $1 AND day_of_week = $2`
	var rule models.StaffScheduleRule
	if err := r.db.GetContext(ctx, &rule, query, staffID, dayOfWeek); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRules returns a staff member's weekly rows ordered by weekday.
func (r *StaffScheduleRepository) ListRules(ctx context.Context, staffID string) ([]models.StaffScheduleRule, error) {
	const query = `SELECT staff_id, day_of_week, is_working_day, start_time, end_time, updated_at
FROM staff_schedule_rules WHERE staff_id = $1 ORDER BY day_of_week ASC`
	var rules []models.StaffScheduleRule
	if err := r.db.SelectContext(ctx, &rules, query, staffID); err != nil {
		return nil, fmt.Errorf("list staff schedule rules: %w", err)
	}
	return rules, nil
}

// ReplaceRules upserts a staff member's weekly table within a transaction.
func (r *StaffScheduleRepository) ReplaceRules(ctx context.Context, staffID string, rules []models.StaffScheduleRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace staff rules: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `
INSERT INTO staff_schedule_rules (staff_id, day_of_week, is_working_day, start_time, end_time, updated_at)
VALUES (:staff_id, :day_of_week, :is_working_day, :start_time, :end_time, :updated_at)
ON CONFLICT (staff_id, day_of_week) DO UPDATE
SET is_working_day = EXCLUDED.is_working_day,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    updated_at = EXCLUDED.updated_at`

	for i := range rules {
		rule := rules[i]
		rule.StaffID = staffID
		rule.UpdatedAt = now
		if _, err = sqlx.NamedExecContext(ctx, tx, query, &rule); err != nil {
			return fmt.Errorf("upsert staff schedule row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace staff rules: %w", err)
	}
	return nil
}

// ListExceptionsCovering returns exceptions whose date range contains the
// given date, newest first so the resolver's most-recently-created-wins
// policy is a simple head pick.
func (r *StaffScheduleRepository) ListExceptionsCovering(ctx context.Context, staffID string, date time.Time) ([]models.ScheduleException, error) {
	const query = `SELECT id, staff_id, date_range_start, date_range_end, type, custom_start_time, custom_end_time, created_at
FROM schedule_exceptions WHERE staff_id = $1 AND date_range_start <= $2 AND date_range_end >= $2
ORDER BY created_at DESC`
	var exceptions []models.ScheduleException
	if err := r.db.SelectContext(ctx, &exceptions, query, staffID, date); err != nil {
		return nil, fmt.Errorf("list exceptions covering date: %w", err)
	}
	return exceptions, nil
}

// ListExceptions returns all exceptions of a staff member ordered by range
// start.
func (r *StaffScheduleRepository) ListExceptions(ctx context.Context, staffID string) ([]models.ScheduleException, error) {
	const query = `SELECT id, staff_id, date_range_start, date_range_end, type, custom_start_time, custom_end_time, created_at
FROM schedule_exceptions WHERE staff_id = $1 ORDER BY date_range_start ASC`
	var exceptions []models.ScheduleException
	if err := r.db.SelectContext(ctx, &exceptions, query, staffID); err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	return exceptions, nil
}

// FindOverlappingExceptions returns existing exceptions intersecting the
// given date range, used to surface write-time data-integrity warnings.
func (r *StaffScheduleRepository) FindOverlappingExceptions(ctx context.Context, staffID string, rangeStart, rangeEnd time.Time) ([]models.ScheduleException, error) {
	const query = `SELECT id, staff_id, date_range_start, date_range_end, type, custom_start_time, custom_end_time, created_at
FROM schedule_exceptions WHERE staff_id = $1 AND date_range_start <= $3 AND date_range_end >= $2`
	var exceptions []models.ScheduleException
	if err := r.db.SelectContext(ctx, &exceptions, query, staffID, rangeStart, rangeEnd); err != nil {
		return nil, fmt.Errorf("find overlapping exceptions: %w", err)
	}
	return exceptions, nil
}

// CreateException stores a new exception row.
func (r *StaffScheduleRepository) CreateException(ctx context.Context, exception *models.ScheduleException) error {
	if exception.ID == "" {
		exception.ID = uuid.NewString()
	}
	if exception.CreatedAt.IsZero() {
		exception.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO schedule_exceptions (id, staff_id, date_range_start, date_range_end, type, custom_start_time, custom_end_time, created_at)
VALUES (:id, :staff_id, :date_range_start, :date_range_end, :type, :custom_start_time, :custom_end_time, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exception); err != nil {
		return fmt.Errorf("create exception: %w", err)
	}
	return nil
}

// DeleteException removes an exception by id, scoped to the staff member.
func (r *StaffScheduleRepository) DeleteException(ctx context.Context, staffID, exceptionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_exceptions WHERE id = $1 AND staff_id = $2`, exceptionID, staffID); err != nil {
		return fmt.Errorf("delete exception: %w", err)
	}
	return nil
}
