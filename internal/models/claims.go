package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims attached to authenticated requests by the
// auth middleware. Authorization against a wallet is always re-derived from
// the Member row, never from the token.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
