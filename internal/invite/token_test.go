package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("s3cret", time.Hour)

	token, expiresAt, err := tm.Issue("acme", "emp-1", "jane@acme.test")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acme", claims.CompanyID)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, "jane@acme.test", claims.Email)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("other", time.Hour).Issue("acme", "emp-1", "jane@acme.test")
	require.NoError(t, err)

	_, err = NewTokenManager("s3cret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("s3cret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("s3cret", time.Hour)
	issued := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }

	token, _, err := tm.Issue("acme", "emp-1", "jane@acme.test")
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://portal.acme.test/accept-invitation?token=a.b.c", Link("https://portal.acme.test/", "a.b.c"))
}
