package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", 7*24*time.Hour)

	token, err := svc.GenerateToken(Identity{UserID: 42, TenantID: 7, Email: "c@example.com", Role: "customer"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.TenantID)
	assert.Equal(t, "c@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).GenerateToken(Identity{UserID: 1, TenantID: 1, Role: "admin"})
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := New("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(Identity{UserID: 1, TenantID: 1, Role: "customer"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
