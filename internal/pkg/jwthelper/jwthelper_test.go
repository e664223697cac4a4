package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, 1700000000123, "work", "curl/8.0", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000123), id)
	assert.Equal(t, "work", claims.Profile)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	key := []byte("signing-key")

	expired, err := GenerateToken(key, 1, "default", "", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := GenerateToken(key, 1, "default", "", time.Minute)
	require.NoError(t, err)
	_, err = ParseToken([]byte("other-key"), valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(key, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
