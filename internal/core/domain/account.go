package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account types. Authorization decisions must
// switch exhaustively over these values so an unknown role can never fall
// through to "allowed".
type Role string

const (
	RoleClient   Role = "Client"
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

var ErrUnknownRole = errors.New("unknown account role")

// ParseRole converts a stored string into a Role, rejecting anything outside
// the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// CanManageInventory reports whether the role may reach the inventory back
// office. Only Employee and Admin qualify; every other value, including a
// role that was never parsed, is denied.
func (r Role) CanManageInventory() bool {
	switch r {
	case RoleEmployee, RoleAdmin:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}

// Account models a registered user of the dealership site.
type Account struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
