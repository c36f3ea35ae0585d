package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/DesignCorporation/Beauty-sub004/internal/models"
)

// SalonRepository reads the tenant read model.
type SalonRepository struct {
	db *sqlx.DB
}

// NewSalonRepository creates a new salon repository.
func NewSalonRepository(db *sqlx.DB) *SalonRepository {
	return &SalonRepository{db: db}
}

// GetByID loads a salon by tenant id.
func (r *SalonRepository) GetByID(ctx context.Context, tenantID string) (*models.Salon, error) {
	const query = `SELECT id, name, timezone, created_at FROM salons WHERE id = $1`
	var salon models.Salon
	if err := r.db.GetContext(ctx, &salon, query, tenantID); err != nil {
		return nil, err
	}
	return &salon, nil
}
