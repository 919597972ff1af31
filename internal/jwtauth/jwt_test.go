package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ibangate/pkg/domain-errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-key", "ibangate", "ibangate-api")

	token, err := svc.GenerateToken("ops@example.com", "demo-client", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "demo-client", claims.ClientID)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := NewService("test-key", "ibangate", "ibangate-api")

	token, err := svc.GenerateToken("ops@example.com", "demo-client", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_RejectsWrongKey(t *testing.T) {
	minter := NewService("key-a", "ibangate", "ibangate-api")
	verifier := NewService("key-b", "ibangate", "ibangate-api")

	token, err := minter.GenerateToken("ops@example.com", "demo-client", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	svc := NewService("test-key", "ibangate", "ibangate-api")

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
