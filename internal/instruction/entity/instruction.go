package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type selects the payment instruction variant.
type Type string

const (
	TypeDebit  Type = "debit"
	TypeCredit Type = "credit"
)

// StatusInitiated is the only state this service ever writes; everything
// after that belongs to the settlement pipeline.
const StatusInitiated = "initiated"

// Instruction is a persisted payment instruction tied to exactly one account.
// Mandate fields are set for debits, remittance information for credits.
type Instruction struct {
	ID                    string          `db:"id" json:"id"`
	AccountID             string          `db:"account_id" json:"account_id"`
	Type                  Type            `db:"instruction_type" json:"type"`
	Name                  string          `db:"name" json:"name"`
	Amount                decimal.Decimal `db:"amount" json:"amount"`
	BIC                   string          `db:"bic" json:"bic"`
	IBAN                  string          `db:"iban" json:"iban"`
	ERef                  string          `db:"eref" json:"eref"`
	RequestedDate         time.Time       `db:"requested_date" json:"requested_date"`
	MandateID             *string         `db:"mandate_id" json:"mandate_id,omitempty"`
	MandateSignatureDate  *time.Time      `db:"mandate_signature_date" json:"mandate_signature_date,omitempty"`
	RemittanceInformation *string         `db:"remittance_information" json:"remittance_information,omitempty"`
	Status                string          `db:"status" json:"status"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
}
