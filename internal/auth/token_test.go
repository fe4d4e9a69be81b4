package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/session"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60)

	sess := &session.Session{UserID: 7, Name: "Pedro", Role: domain.RoleAgent}
	token, expiresAt, err := tm.Generate(sess)
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "Pedro", claims.Name)
	require.Equal(t, domain.RoleAgent, claims.Role)
	require.Equal(t, "7", claims.Subject)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 60)
	verifier := auth.NewTokenManager("secret-b", 60)

	token, _, err := issuer.Generate(&session.Session{UserID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := auth.NewTokenManager("secret", 60)
	_, err := tm.Parse("not-a-token")
	require.Error(t, err)
}
