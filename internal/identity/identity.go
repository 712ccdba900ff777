// Package identity is the boundary to the external identity system: it turns
// a bearer credential into a verified actor identity. Credential issuance and
// refresh live outside this service.
package identity

import (
	"context"
	"strconv"
	"time"

	"ripple/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified actor threaded through every operation.
type Identity struct {
	ID       uint
	Username string
}

// Authenticator resolves a request credential to an Identity.
// Implementations must return an AppError with code UNAUTHENTICATED for any
// missing, malformed or expired credential.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (Identity, error)
}

// TokenAuthenticator verifies HMAC-signed JWTs carrying the user id in the
// "sub" claim and the username in the "username" claim.
type TokenAuthenticator struct {
	secret []byte
}

// NewTokenAuthenticator creates a TokenAuthenticator with the given secret.
func NewTokenAuthenticator(secret string) *TokenAuthenticator {
	return &TokenAuthenticator{secret: []byte(secret)}
}

func (a *TokenAuthenticator) Authenticate(_ context.Context, credential string) (Identity, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewUnauthenticatedError("Invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, models.NewUnauthenticatedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, models.NewUnauthenticatedError("Invalid token structure - missing subject")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || id == 0 {
		return Identity{}, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	username, _ := claims["username"].(string)

	return Identity{ID: uint(id), Username: username}, nil
}

// Issue mints a signed token for the given identity. Used by development
// tooling and tests; the production issuer is the external identity system.
func (a *TokenAuthenticator) Issue(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(id.ID), 10),
		"username": id.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	})
	return token.SignedString(a.secret)
}
