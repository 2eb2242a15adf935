package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCredentialsHashVerifyRoundTrip(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	digest, err := creds.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", digest)

	ok, err := creds.Verify("s3cret-pass", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = creds.Verify("wrong-pass", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialsDistinctSalts(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	first, err := creds.Hash("same-password")
	require.NoError(t, err)
	second, err := creds.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCredentialsMalformedDigest(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	_, err := creds.Verify("anything", "not-a-bcrypt-digest")
	require.ErrorIs(t, err, ErrInvalidDigest)
}

func TestCredentialsCostFallsBackToDefault(t *testing.T) {
	creds := NewCredentials(99)
	assert.Equal(t, DefaultBcryptCost, creds.cost)

	creds = NewCredentials(-1)
	assert.Equal(t, DefaultBcryptCost, creds.cost)
}
