package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims are the JWT claims carried by API bearer tokens.
type AccessClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID   uuid.UUID
	Username string
}
