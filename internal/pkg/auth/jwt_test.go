package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/auth"
)

func newService(secret, issuer string) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: secret, TokenExp: time.Hour, TokenIssuer: issuer})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newService("s3cret", "resourcehub")

	token, expiry, err := s.GenerateToken("uploader", 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := s.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "uploader", claims.Subject)
	assert.Equal(t, "resourcehub", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_CustomTTL(t *testing.T) {
	_, expiry, err := newService("s3cret", "resourcehub").GenerateToken("ci", 10*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiry, 5*time.Second)
}

func TestGenerateToken_RequiresSubject(t *testing.T) {
	_, _, err := newService("s3cret", "resourcehub").GenerateToken("", 0)
	assert.Error(t, err)
}

func TestValidateToken_Rejections(t *testing.T) {
	s := newService("s3cret", "resourcehub")

	other, _, err := newService("different", "resourcehub").GenerateToken("uploader", 0)
	require.NoError(t, err)
	_, err = s.ValidateToken(other)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	wrongIssuer, _, err := newService("s3cret", "someone-else").GenerateToken("uploader", 0)
	require.NoError(t, err)
	_, err = s.ValidateToken(wrongIssuer)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, _, err := s.GenerateToken("uploader", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(time.Second)
	_, err = s.ValidateToken(expired)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)

	_, err = s.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer a.b.c", "a.b.c", true},
		{"a.b.c", "a.b.c", true},
		{`"Bearer a.b.c"`, "a.b.c", true},
		{"Bearer abc", "", false},
		{"", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
	}
	for _, tt := range tests {
		got, err := auth.ExtractBearerToken(tt.header)
		if !tt.ok {
			assert.ErrorIs(t, err, auth.ErrInvalidFormat, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
	assert.True(t, strings.Contains(auth.ErrInvalidFormat.Error(), "invalid token"))
}
