package entity

import "time"

// Account is a bank account owned by one organization. The IBAN is the
// public lookup key and is unique across all organizations.
type Account struct {
	ID                 string    `db:"id" json:"id"`
	OrganizationID     string    `db:"organization_id" json:"organization_id"`
	IBAN               string    `db:"iban" json:"iban"`
	Name               string    `db:"name" json:"name"`
	CreditorIdentifier string    `db:"creditor_identifier" json:"creditor_identifier"`
	Activated          bool      `db:"activated" json:"activated"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}
