package jwt

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(-time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 1)
	require.NoError(t, err)

	assert.Error(t, j.Validate(ctx, token))

	claims, err := j.GetClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	assert.Error(t, j.Validate(ctx, "invalid.token.string"))
	assert.Error(t, j.Validate(ctx, ""))
}

func TestJWT_WrongKey(t *testing.T) {
	ctx := context.Background()
	token, err := New(WithSecretKey("key-a")).Generate(ctx, 7)
	require.NoError(t, err)

	assert.Error(t, New(WithSecretKey("key-b")).Validate(ctx, token))
}

func TestJWT_ResetToken(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		token, err := j.GenerateReset(ctx, 5, "abcd", 10*time.Minute)
		require.NoError(t, err)

		claims, err := j.GetResetClaims(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), claims.ResetPassword)
		assert.Equal(t, "abcd", claims.Fingerprint)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := j.GenerateReset(ctx, 5, "", -time.Second)
		require.NoError(t, err)

		_, err = j.GetResetClaims(ctx, token)
		assert.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := j.GenerateReset(ctx, 5, "", time.Minute)
		require.NoError(t, err)

		other, err := j.GenerateReset(ctx, 6, "", time.Minute)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		otherParts := strings.Split(other, ".")
		forged := parts[0] + "." + otherParts[1] + "." + parts[2]

		_, err = j.GetResetClaims(ctx, forged)
		assert.Error(t, err)
	})

	t.Run("access token is not a reset token", func(t *testing.T) {
		token, err := j.Generate(ctx, 5)
		require.NoError(t, err)

		_, err = j.GetResetClaims(ctx, token)
		assert.Error(t, err)
	})

	t.Run("reset token is not an access token", func(t *testing.T) {
		token, err := j.GenerateReset(ctx, 5, "", time.Minute)
		require.NoError(t, err)

		_, err = j.GetClaims(ctx, token)
		assert.Error(t, err)
	})
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := j.GetTokenFromRequest(ctx, r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
