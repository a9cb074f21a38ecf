package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/VitaminP8/yatube/internal/apperr"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage/memory"
)

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test_secret_key_for_jwt", time.Hour, 2*time.Hour)
	return NewService(memory.NewUserMemoryStorage(), tokens, WithHashCost(bcrypt.MinCost)), tokens
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	return appErr.Fields
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		s, _ := newTestService()
		u, err := s.Register(ctx, Registration{
			Username: strPtr("leo"),
			Email:    strPtr("leo@example.com"),
			Password: strPtr("password123"),
		})
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.NotEqual(t, "password123", u.Password)
		assert.False(t, u.DateJoined.IsZero())
	})

	t.Run("Duplicate username", func(t *testing.T) {
		s, _ := newTestService()
		in := Registration{Username: strPtr("leo"), Password: strPtr("password123")}
		_, err := s.Register(ctx, in)
		require.NoError(t, err)

		_, err = s.Register(ctx, in)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, []string{msgUsernameTaken}, fieldErrors(t, err)["username"])
	})

	t.Run("Reports every invalid field", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, Registration{
			Username: strPtr("bad name"),
			Email:    strPtr("not-an-email"),
			Password: strPtr("123"),
		})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{msgUsernameInvalid}, fields["username"])
		assert.Equal(t, []string{msgEmailInvalid}, fields["email"])
		assert.Equal(t, []string{msgPasswordShort, msgPasswordNumeric}, fields["password"])
	})

	t.Run("Password longer than bcrypt accepts", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, Registration{Username: strPtr("longpw"), Password: strPtr(strings.Repeat("ab", 40))})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, []string{msgPasswordLong}, fieldErrors(t, err)["password"])

		_, err = s.Register(ctx, Registration{Username: strPtr("edgepw"), Password: strPtr(strings.Repeat("ab", 36))})
		assert.NoError(t, err)
	})

	t.Run("Missing fields", func(t *testing.T) {
		s, _ := newTestService()
		_, err := s.Register(ctx, Registration{})
		fields := fieldErrors(t, err)
		assert.Equal(t, []string{apperr.MsgRequired}, fields["username"])
		assert.Equal(t, []string{apperr.MsgRequired}, fields["password"])
		assert.NotContains(t, fields, "email")
	})
}

func TestService_Tokens(t *testing.T) {
	ctx := context.Background()
	s, tokens := newTestService()

	u, err := s.Register(ctx, Registration{Username: strPtr("leo"), Password: strPtr("password123")})
	require.NoError(t, err)

	t.Run("Obtain pair", func(t *testing.T) {
		pair, err := s.ObtainTokens(ctx, Credentials{Username: strPtr("leo"), Password: strPtr("password123")})
		require.NoError(t, err)

		claims, err := tokens.Parse(pair.Access, auth.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)

		_, err = tokens.Parse(pair.Refresh, auth.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := s.ObtainTokens(ctx, Credentials{Username: strPtr("leo"), Password: strPtr("wrongpassword")})
		assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := s.ObtainTokens(ctx, Credentials{Username: strPtr("ghost"), Password: strPtr("password123")})
		assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	})

	t.Run("Missing credentials", func(t *testing.T) {
		_, err := s.ObtainTokens(ctx, Credentials{})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Refresh issues access token", func(t *testing.T) {
		pair, err := s.ObtainTokens(ctx, Credentials{Username: strPtr("leo"), Password: strPtr("password123")})
		require.NoError(t, err)

		access, err := s.Refresh(ctx, &pair.Refresh)
		require.NoError(t, err)
		_, err = tokens.Parse(access, auth.AccessToken)
		assert.NoError(t, err)

		_, err = s.Refresh(ctx, &pair.Access)
		assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	})

	t.Run("Verify", func(t *testing.T) {
		pair, err := s.ObtainTokens(ctx, Credentials{Username: strPtr("leo"), Password: strPtr("password123")})
		require.NoError(t, err)

		assert.NoError(t, s.Verify(&pair.Access))
		assert.NoError(t, s.Verify(&pair.Refresh))
		assert.True(t, apperr.Is(s.Verify(strPtr("garbage")), apperr.KindUnauthenticated))
		assert.True(t, apperr.Is(s.Verify(nil), apperr.KindValidation))
	})

	t.Run("Me", func(t *testing.T) {
		me, err := s.Me(auth.WithUserID(ctx, u.ID))
		require.NoError(t, err)
		assert.Equal(t, "leo", me.Username)

		_, err = s.Me(ctx)
		assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
	})
}
