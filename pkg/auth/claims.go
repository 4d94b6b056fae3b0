package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the typed JWT issued on login. The username doubles as
// the registered subject claim.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *AccessTokenClaims) Username() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
