package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finbolt/payment-initiation-api/internal/statement/entity"
)

// StatementRepo provides data access for the statements table. Rows are
// written by the ingestion side; this service only reads.
type StatementRepo struct {
	db *sqlx.DB
}

func NewStatementRepo(db *sqlx.DB) *StatementRepo { return &StatementRepo{db: db} }

// EnsureTable creates the statements table if not exists (idempotent).
func (r *StatementRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS statements (
  id varchar(32) PRIMARY KEY,
  account_id varchar(32) NOT NULL REFERENCES accounts(id),
  content jsonb NOT NULL DEFAULT '{}'::jsonb,
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_statements_account_id ON statements (account_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// ListByAccount returns one page of an account's statements, newest first.
func (r *StatementRepo) ListByAccount(ctx context.Context, accountID string, page, perPage int) ([]*entity.Statement, error) {
	const q = `SELECT id, account_id, content, created_at
	           FROM statements WHERE account_id=$1
	           ORDER BY created_at DESC, id DESC
	           LIMIT $2 OFFSET $3`
	rows := []*entity.Statement{}
	if err := r.db.SelectContext(ctx, &rows, q, accountID, perPage, (page-1)*perPage); err != nil {
		return nil, err
	}
	return rows, nil
}
