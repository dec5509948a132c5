package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finbolt/payment-initiation-api/internal/organization/entity"
)

// OrganizationRepo provides data access for the organizations table.
type OrganizationRepo struct {
	db *sqlx.DB
}

func NewOrganizationRepo(db *sqlx.DB) *OrganizationRepo { return &OrganizationRepo{db: db} }

// EnsureTable creates the organizations table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *OrganizationRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS organizations (
  id varchar(32) PRIMARY KEY,
  name text NOT NULL,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new organization row.
func (r *OrganizationRepo) Create(ctx context.Context, o *entity.Organization) error {
	const q = `INSERT INTO organizations (id, name) VALUES ($1, $2) RETURNING created_at`
	return r.db.GetContext(ctx, &o.CreatedAt, q, o.ID, o.Name)
}

// GetByID fetches an organization or sql.ErrNoRows.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	const q = `SELECT id, name, created_at FROM organizations WHERE id=$1`
	var row entity.Organization
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}
