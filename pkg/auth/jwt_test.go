package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("segredo", time.Hour)

	token, err := svc.GenerateAccessToken(42, "a@x.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UsuarioID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestTokenExpirado(t *testing.T) {
	svc := NewJWTService("segredo", -time.Minute)

	token, err := svc.GenerateAccessToken(42, "a@x.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenSegredoErrado(t *testing.T) {
	token, err := NewJWTService("segredo-a", time.Hour).GenerateAccessToken(1, "a@x.com")
	require.NoError(t, err)

	_, err = NewJWTService("segredo-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}
