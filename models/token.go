package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed or freshly signed JWT together with the identity it
// carries.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact serialized form sent to clients.
	SignedString string `json:"-"`

	// UserID is the subject of the token.
	UserID string `json:"-"`
}

func (t *Token) String() string {
	return t.SignedString
}
