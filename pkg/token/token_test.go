package token

import (
	"testing"
	"time"

	"github.com/multicomhq/chitfund-backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.Error(t, err)
}

func TestUserTokenRoundTrip(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := svc.IssueUserToken("64f000000000000000000001", 42)
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, KindUser, claims.Kind)
	assert.Equal(t, "64f000000000000000000001", claims.UserID)
	assert.Equal(t, 42, claims.CardNumber)
	assert.Empty(t, claims.AdminID)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := svc.IssueAdminToken("64f000000000000000000002")
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, KindAdmin, claims.Kind)
	assert.Equal(t, "64f000000000000000000002", claims.AdminID)
	assert.Empty(t, claims.UserID)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, err := NewService("test-secret", time.Nanosecond)
	require.NoError(t, err)
	// NewService clamps non-positive expiries, so build one explicitly.
	svc.expiry = -time.Minute

	signed, err := svc.IssueUserToken("64f000000000000000000001", 42)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, err := NewService("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewService("secret-b", time.Hour)
	require.NoError(t, err)

	signed, err := issuer.IssueAdminToken("64f000000000000000000002")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc, err := NewService("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
