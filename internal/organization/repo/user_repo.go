package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finbolt/payment-initiation-api/internal/organization/entity"
)

// UserRepo provides data access for the users table.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id varchar(32) PRIMARY KEY,
  organization_id varchar(32) NOT NULL REFERENCES organizations(id),
  name text NOT NULL DEFAULT '',
  access_token text NOT NULL,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_access_token ON users (access_token);
CREATE INDEX IF NOT EXISTS idx_users_organization_id ON users (organization_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new user row.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const q = `INSERT INTO users (id, organization_id, name, access_token)
	           VALUES ($1, $2, $3, $4) RETURNING created_at`
	return r.db.GetContext(ctx, &u.CreatedAt, q, u.ID, u.OrganizationID, u.Name, u.AccessToken)
}

// GetByAccessToken returns the user holding the exact token, or sql.ErrNoRows.
// The unique index guarantees at most one match.
func (r *UserRepo) GetByAccessToken(ctx context.Context, token string) (*entity.User, error) {
	const q = `SELECT id, organization_id, name, access_token, created_at
	           FROM users WHERE access_token=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, token); err != nil {
		return nil, err
	}
	return &row, nil
}
