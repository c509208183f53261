package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// StaffRole gates the staff-facing API
type StaffRole string

const (
	RoleScheduler StaffRole = "SCHEDULER"
	RoleAdmin     StaffRole = "ADMIN"
)

func (r StaffRole) String() string { return string(r) }

// Valid reports whether r is a role the staff API accepts
func (r StaffRole) Valid() bool {
	return r == RoleScheduler || r == RoleAdmin
}

// UserClaims is what handlers read about the caller
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
}

// StaffClaims is the payload of a staff bearer token
type StaffClaims struct {
	RoleValue StaffRole `json:"role"`
	jwt.RegisteredClaims
}

func (c *StaffClaims) UserID() string { return c.Subject }
func (c *StaffClaims) Role() string   { return c.RoleValue.String() }
func (c *StaffClaims) Source() string { return "JWT" }

// AnonymousClaims marks requests that passed through with staff auth disabled
type AnonymousClaims struct{}

func (AnonymousClaims) UserID() string { return "anonymous" }
func (AnonymousClaims) Role() string   { return "" }
func (AnonymousClaims) Source() string { return "NONE" }
