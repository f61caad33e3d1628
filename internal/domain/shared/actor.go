package shared

// Role identifies what an actor is allowed to do
type Role string

const (
	// RoleUser is a regular customer; may only act on orders owned by their email
	RoleUser Role = "user"
	// RoleAdmin may view and mutate any order or payment claim
	RoleAdmin Role = "admin"
	// RoleSystem is the internal actor used for workflow side effects
	// (claim creation and approval driving order status)
	RoleSystem Role = "system"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

// Actor is the identity attempting an operation. Orders are owned by email,
// not by a user id: the email is copied onto the order at creation time and
// authorization compares it against the authenticated caller's email.
type Actor struct {
	Email string
	Role  Role
}

// SystemActor is the actor used by the reconciliation workflow
var SystemActor = Actor{Role: RoleSystem}

// IsAdmin returns true for admin actors
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsSystem returns true for the internal workflow actor
func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}

// Owns reports whether the actor's email matches the given owner email.
// The comparison is advisory: if a user later changes their email, ownership
// of existing orders does not retroactively update.
func (a Actor) Owns(ownerEmail string) bool {
	return a.Email != "" && a.Email == ownerEmail
}
