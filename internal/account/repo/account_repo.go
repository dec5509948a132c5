package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finbolt/payment-initiation-api/internal/account/entity"
)

// AccountRepo provides data access for the accounts table.
type AccountRepo struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// EnsureTable creates the accounts table if not exists (idempotent).
// The unique index on iban enforces global IBAN uniqueness across tenants.
func (r *AccountRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS accounts (
  id varchar(32) PRIMARY KEY,
  organization_id varchar(32) NOT NULL REFERENCES organizations(id),
  iban varchar(34) NOT NULL,
  name text NOT NULL DEFAULT '',
  creditor_identifier text NOT NULL DEFAULT '',
  activated boolean NOT NULL DEFAULT false,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_iban ON accounts (iban);
CREATE INDEX IF NOT EXISTS idx_accounts_organization_id ON accounts (organization_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new account row.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	const q = `INSERT INTO accounts (id, organization_id, iban, name, creditor_identifier, activated)
	           VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	return r.db.GetContext(ctx, &a.CreatedAt, q,
		a.ID, a.OrganizationID, a.IBAN, a.Name, a.CreditorIdentifier, a.Activated)
}

// GetByIBANForOrganization returns the one account with the given IBAN owned
// by the given organization, or sql.ErrNoRows. A matching IBAN in another
// organization is indistinguishable from no row at all.
func (r *AccountRepo) GetByIBANForOrganization(ctx context.Context, orgID, iban string) (*entity.Account, error) {
	const q = `SELECT id, organization_id, iban, name, creditor_identifier, activated, created_at
	           FROM accounts WHERE iban=$1 AND organization_id=$2`
	var row entity.Account
	if err := r.db.GetContext(ctx, &row, q, iban, orgID); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByOrganization returns all accounts of one organization.
func (r *AccountRepo) ListByOrganization(ctx context.Context, orgID string) ([]*entity.Account, error) {
	const q = `SELECT id, organization_id, iban, name, creditor_identifier, activated, created_at
	           FROM accounts WHERE organization_id=$1 ORDER BY created_at, id`
	rows := []*entity.Account{}
	if err := r.db.SelectContext(ctx, &rows, q, orgID); err != nil {
		return nil, err
	}
	return rows, nil
}
