package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialboost/backend/internal/domain/shared"
	"github.com/socialboost/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters!!",
		Expiration: expiration,
		Issuer:     "socialboost-backend",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.Issue("ali@example.com", shared.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ali@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)

	actor := claims.Actor()
	assert.Equal(t, "ali@example.com", actor.Email)
	assert.Equal(t, shared.RoleUser, actor.Role)
	assert.False(t, actor.IsAdmin())
}

func TestJWTService_Validate_Errors(t *testing.T) {
	service := newTestService(time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{
			Secret:     "another-secret-also-32-characters!!!",
			Expiration: time.Hour,
			Issuer:     "socialboost-backend",
		})
		token, err := other.Issue("ali@example.com", shared.RoleUser)
		require.NoError(t, err)

		_, err = service.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := newTestService(-time.Minute)
		token, err := expired.Issue("ali@example.com", shared.RoleUser)
		require.NoError(t, err)

		_, err = service.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects wrong issuer", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{
			Secret:     "test-secret-at-least-32-characters!!",
			Expiration: time.Hour,
			Issuer:     "someone-else",
		})
		token, err := other.Issue("ali@example.com", shared.RoleAdmin)
		require.NoError(t, err)

		_, err = service.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
