package entity

import (
	"encoding/json"
	"time"
)

// Statement is an immutable record of a financial movement on one account.
// The content blob is opaque here; it is produced by the ingestion side.
type Statement struct {
	ID        string          `db:"id" json:"id"`
	AccountID string          `db:"account_id" json:"account_id"`
	Content   json.RawMessage `db:"content" json:"content"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
