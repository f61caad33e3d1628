package identity

import (
	"net/mail"
	"strings"

	"github.com/socialboost/backend/internal/domain/shared"
)

// User is a storefront account. Orders are matched to users by email string,
// not by id; the user record exists for authentication and role checks only.
type User struct {
	shared.BaseAggregateRoot
	Name         string      `gorm:"not null"`
	Email        string      `gorm:"not null;uniqueIndex"`
	PasswordHash string      `gorm:"not null"`
	Role         shared.Role `gorm:"not null;default:user"`
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user account with the given bcrypt password hash
func NewUser(name, email, passwordHash string, role shared.Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "name: name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "email: invalid email address")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "password: password hash cannot be empty")
	}
	if role != shared.RoleUser && role != shared.RoleAdmin {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "role: role must be user or admin")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
	}, nil
}

// Actor returns the shared.Actor this user acts as
func (u *User) Actor() shared.Actor {
	return shared.Actor{Email: u.Email, Role: u.Role}
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == shared.RoleAdmin
}
