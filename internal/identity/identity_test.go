package identity

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnauthenticated, appErr.Code)
}

func TestTokenAuthenticator_RoundTrip(t *testing.T) {
	t.Parallel()

	auth := NewTokenAuthenticator("test-secret-key-for-round-trips")
	token, err := auth.Issue(Identity{ID: 7, Username: "alice"}, time.Hour)
	require.NoError(t, err)

	id, err := auth.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id.ID)
	assert.Equal(t, "alice", id.Username)
}

func TestTokenAuthenticator_Expired(t *testing.T) {
	t.Parallel()

	auth := NewTokenAuthenticator("test-secret-key-for-round-trips")
	token, err := auth.Issue(Identity{ID: 7, Username: "alice"}, -time.Minute)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), token)
	assertUnauthenticated(t, err)
}

func TestTokenAuthenticator_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenAuthenticator("secret-one")
	token, err := issuer.Issue(Identity{ID: 7, Username: "alice"}, time.Hour)
	require.NoError(t, err)

	verifier := NewTokenAuthenticator("secret-two")
	_, err = verifier.Authenticate(context.Background(), token)
	assertUnauthenticated(t, err)
}

func TestTokenAuthenticator_Garbage(t *testing.T) {
	t.Parallel()

	auth := NewTokenAuthenticator("test-secret")
	_, err := auth.Authenticate(context.Background(), "not-a-jwt")
	assertUnauthenticated(t, err)
}

func TestTokenAuthenticator_ZeroSubject(t *testing.T) {
	t.Parallel()

	auth := NewTokenAuthenticator("test-secret")
	token, err := auth.Issue(Identity{ID: 0, Username: "nobody"}, time.Hour)
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), token)
	assertUnauthenticated(t, err)
}
