package models

import "time"

// Salon is the tenant read model. Its timezone is the reference for every
// wall-clock value stored for the tenant.
type Salon struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Staff is a bookable staff member of a salon.
type Staff struct {
	ID       string `db:"id" json:"id"`
	TenantID string `db:"tenant_id" json:"tenant_id"`
	Name     string `db:"name" json:"name"`
	Active   bool   `db:"active" json:"active"`
}
