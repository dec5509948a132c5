package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finbolt/payment-initiation-api/internal/instruction/entity"
)

// InstructionRepo provides data access for the payment_instructions table.
type InstructionRepo struct {
	db *sqlx.DB
}

func NewInstructionRepo(db *sqlx.DB) *InstructionRepo { return &InstructionRepo{db: db} }

// EnsureTable creates the payment_instructions table if not exists
// (idempotent). There is deliberately no uniqueness on eref: two identical
// submissions create two rows.
func (r *InstructionRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS payment_instructions (
  id varchar(32) PRIMARY KEY,
  account_id varchar(32) NOT NULL REFERENCES accounts(id),
  instruction_type text NOT NULL,
  name text NOT NULL,
  amount numeric(18,2) NOT NULL,
  bic text NOT NULL,
  iban text NOT NULL,
  eref text NOT NULL,
  requested_date timestamptz NOT NULL,
  mandate_id text,
  mandate_signature_date timestamptz,
  remittance_information text,
  status text NOT NULL DEFAULT 'initiated',
  created_at timestamptz NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_payment_instructions_account_id ON payment_instructions (account_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new instruction row.
func (r *InstructionRepo) Create(ctx context.Context, inst *entity.Instruction) error {
	const q = `INSERT INTO payment_instructions
	  (id, account_id, instruction_type, name, amount, bic, iban, eref,
	   requested_date, mandate_id, mandate_signature_date, remittance_information, status)
	  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	  RETURNING created_at`
	return r.db.GetContext(ctx, &inst.CreatedAt, q,
		inst.ID, inst.AccountID, inst.Type, inst.Name, inst.Amount,
		inst.BIC, inst.IBAN, inst.ERef, inst.RequestedDate,
		inst.MandateID, inst.MandateSignatureDate, inst.RemittanceInformation,
		inst.Status)
}
