package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

// StaffRepository reads salon staff members.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository creates a new staff repository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// FindByID loads a staff member scoped to a tenant. Returns sql.ErrNoRows
// when the staff member does not exist or belongs to another tenant.
func (r *StaffRepository) FindByID(ctx context.Context, tenantID, staffID string) (*models.Staff, error) {
	const query = `SELECT id, tenant_id, name, active FROM staff WHERE id = $1 AND tenant_id = $2`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, staffID, tenantID); err != nil {
		return nil, err
	}
	return &staff, nil
}

// ListActiveByTenant returns the bookable staff of a salon.
func (r *StaffRepository) ListActiveByTenant(ctx context.Context, tenantID string) ([]models.Staff, error) {
	const query = `SELECT id, tenant_id, name, active FROM staff WHERE tenant_id = $1 AND active = TRUE ORDER BY name ASC`
	var staff []models.Staff
	if err := r.db.SelectContext(ctx, &staff, query, tenantID); err != nil {
		return nil, fmt.Errorf("list active staff: %w", err)
	}
	return staff, nil
}
