package entity

import "time"

// Organization is the tenant boundary. Accounts and users hang off exactly
// one organization; nothing in the API crosses it.
type Organization struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// User is a credential holder inside one organization. The access token is
// opaque and unique across all users.
type User struct {
	ID             string    `db:"id" json:"id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	Name           string    `db:"name" json:"name"`
	AccessToken    string    `db:"access_token" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
