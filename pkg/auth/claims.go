package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the decision engine.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id"`
	Roles    []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// Role constants
const (
	// RoleOperator may submit suppliers, buyers and products for decisions.
	RoleOperator = "operator"
	// RoleAnalyst may read the decision logs.
	RoleAnalyst = "analyst"
	RoleAdmin   = "admin"
)
