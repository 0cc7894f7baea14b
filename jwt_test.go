package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := signJWT("secret", "user-123")
	require.NoError(t, err)

	sub, err := parseJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := signJWT("secret", "user-123")
	require.NoError(t, err)

	_, err = parseJWT("other", token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := parseJWT("secret", "not-a-token")
	assert.Error(t, err)
}
