package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

// WorkingHoursRepository persists the salon weekly working-hours table.
type WorkingHoursRepository struct {
	db *sqlx.DB
}

// NewWorkingHoursRepository creates a new working hours repository.
func NewWorkingHoursRepository(db *sqlx.DB) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

// ListByTenant returns the weekly rows for a salon ordered by weekday.
func (r *WorkingHoursRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.WorkingHoursRule, error) {
	const query = `SELECT tenant_id, day_of_week, is_working_day, start_time, end_time, updated_at
FROM working_hours_rules WHERE tenant_id = $1 ORDER BY day_of_week ASC`
	var rules []models.WorkingHoursRule
	if err := r.db.SelectContext(ctx, &rules, query, tenantID); err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return rules, nil
}

// GetByWeekday loads the salon rule for one weekday. Returns sql.ErrNoRows
// when the weekday has no row.
func (r *WorkingHoursRepository) GetByWeekday(ctx context.Context, tenantID string, dayOfWeek int) (*models.WorkingHoursRule, error) {
	const query = `SELECT tenant_id, day_of_week, is_working_day, start_time, end_time, updated_at
FROM working_hours_rules WHERE tenant_id = $1 AND day_of_week = $2`
	var rule models.WorkingHoursRule
	if err := r.db.GetContext(ctx, &rule, query, tenantID, dayOfWeek); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ReplaceWeek upserts the full weekly table for a salon within a transaction.
func (r *WorkingHoursRepository) ReplaceWeek(ctx context.Context, tenantID string, rules []models.WorkingHoursRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace working hours: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	const query = `
INSERT INTO working_hours_rules (tenant_id, day_of_week, is_working_day, start_time, end_time, updated_at)
VALUES (:tenant_id, :day_of_week, :is_working_day, :start_time, :end_time, :updated_at)
ON CONFLICT (tenant_id, day_of_week) DO UPDATE
SET is_working_day = EXCLUDED.is_working_day,
    start_time = EXCLUDED.start_time,
    end_time = EXCLUDED.end_time,
    updated_at = EXCLUDED.updated_at`

	for i := range rules {
		rule := rules[i]
		rule.TenantID = tenantID
		rule.UpdatedAt = now
		if _, err = sqlx.NamedExecContext(ctx, tx, query, &rule); err != nil {
			return fmt.Errorf("upsert working hours row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace working hours: %w", err)
	}
	return nil
}
