package utils

import (
	"encoding/json"
	"net/url"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie the login handler issues and every
// authenticated endpoint reads.
const SessionCookieName = "greenzone_user"

// SessionClaim is the identity a caller asserts via the session cookie.
// Only Email is trusted as a lookup key; Role is display-only and is
// re-resolved from the user store on every request.
type SessionClaim struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity is the store-verified caller identity for one request.
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

type contextKey string

const UserContextKey contextKey = "user"

// ParseSessionToken decodes the session cookie payload. The two producers
// of the cookie escape inconsistently, so both singly- and doubly-escaped
// JSON are accepted. Anything that never parses as JSON is treated as a
// literal email address.
func ParseSessionToken(raw string) SessionClaim {
	value := raw
	for i := 0; i < 3; i++ {
		var claim SessionClaim
		if err := json.Unmarshal([]byte(value), &claim); err == nil && claim.Email != "" {
			return claim
		}
		unescaped, err := url.QueryUnescape(value)
		if err != nil || unescaped == value {
			break
		}
		value = unescaped
	}
	return SessionClaim{Email: raw}
}

func GetIdentity(c *gin.Context) *Identity {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if identity, ok := user.(*Identity); ok {
		return identity
	}
	return nil
}
