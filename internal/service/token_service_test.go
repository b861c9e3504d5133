package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/lms-backend/internal/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.IssueToken(12, model.RoleInstructor)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, model.RoleInstructor, claims.Role)
	assert.Equal(t, "12", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	valid, err := svc.IssueToken(1, model.RoleStudent)
	require.NoError(t, err)

	expired := NewTokenService("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.IssueToken(1, model.RoleStudent)
	require.NoError(t, err)

	other, err := NewTokenService("other", time.Hour).IssueToken(1, model.RoleStudent)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: model.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	admin, err := svc.IssueToken(1, model.RoleAdmin)
	require.NoError(t, err)
	vp, ap := strings.Split(valid, "."), strings.Split(admin, ".")
	tampered := vp[0] + "." + ap[1] + "." + vp[2]

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: model.RoleAdmin}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not-a-token",
		"expired":        old,
		"wrong secret":   other,
		"alg none":       unsigned,
		"missing userId": noUser,
		"tampered":       tampered,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_UnknownRole(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.IssueToken(1, model.Role("GUEST"))

	assert.Error(t, err)
}
