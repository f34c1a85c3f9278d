package entity

import "time"

type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "admin"
)

// Profile is the human-facing record tied 1:1 to an identity held by the
// identity provider. IdentityID is assigned by the provider and is the
// primary key; a profile never exists without a backing identity.
type Profile struct {
	IdentityID string    `db:"identity_id"`
	Email      string    `db:"email"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Username   string    `db:"username"`
	Phone      *string   `db:"phone"`
	Role       Role      `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
}
