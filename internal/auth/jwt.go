package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject means the token verified but carries no usable identity.
	ErrMissingSubject = errors.New("token payload missing subject")
)

// Identity is what a verified access token says about the caller.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Verifier checks HS256 access tokens with the same shared secret the
// session service signs with.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates tokenStr and returns the caller identity.
// The user id comes from the "sub" claim, with "user_id" as a fallback
// for tokens minted by the legacy session endpoint.
func (v *Verifier) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrInvalidToken
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{
		Name: stringClaim(claims, "name"),
		Role: stringClaim(claims, "role"),
	}
	id.UserID = stringClaim(claims, "sub")
	if id.UserID == "" {
		id.UserID = stringClaim(claims, "user_id")
	}
	if id.UserID == "" {
		return Identity{}, ErrMissingSubject
	}
	return id, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
