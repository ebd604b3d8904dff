package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret-key-0123456789abcdefghij", 60)

	t.Run("Round trip preserves claims", func(t *testing.T) {
		token, err := tm.GenerateAccessToken(9, "agent@rentwheels.local", []string{RoleAgent})
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), claims.UserID)
		assert.Equal(t, "agent@rentwheels.local", claims.Email)
		assert.True(t, claims.HasAnyRole(RoleAgent))
		assert.False(t, claims.HasAnyRole(RoleManager, RoleAdmin))
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		other := NewTokenManager("another-secret-key-0123456789abcdefgh", 60)
		token, err := other.GenerateAccessToken(9, "", nil)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
