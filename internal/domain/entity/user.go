package entity

import "time"

// Roles a user can hold. Publishers are regular users that may also manage
// editorial content; there is no separate admin concept.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and must never reach a response body;
// HTTP views omit it by construction.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RolePublisher
}

// Identity is the resolved acting user attached to a request by the auth
// middleware. Services receive it explicitly; they never read it from
// ambient request state.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}
