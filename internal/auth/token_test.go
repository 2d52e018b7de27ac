package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)

	svc, err := NewTokenService("test-secret")
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	in := Identity{UserID: 42, Email: "test@example.com", Role: "admin"}
	token, err := svc.Issue(in)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestVerify_RejectsBadTokens(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	t.Run("malformed", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenService("other-secret")
		require.NoError(t, err)
		token, err := other.Issue(Identity{UserID: 1, Email: "a@x.com", Role: "user"})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"sub":  strconv.FormatUint(1, 10),
			"iss":  "quill-api",
			"aud":  "quill-client",
			"exp":  now.Add(-time.Hour).Unix(),
			"iat":  now.Add(-25 * time.Hour).Unix(),
			"nbf":  now.Add(-25 * time.Hour).Unix(),
			"role": "user",
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(expired)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"sub": "1",
			"iss": "someone-else",
			"aud": "quill-client",
			"exp": now.Add(time.Hour).Unix(),
		}
		foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Verify(foreign)
		assert.Error(t, err)
	})
}

func TestPasswordHashAndCheck(t *testing.T) {
	hashed, err := HashPassword("password1234")
	require.NoError(t, err)
	assert.NotEqual(t, "password1234", hashed)

	assert.True(t, CheckPassword("password1234", hashed))
	assert.False(t, CheckPassword("wrong", hashed))
}
