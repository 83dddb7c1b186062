package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager(testSecret)
	userID := uuid.New()

	raw, err := m.Issue(userID, "alice")
	require.NoError(t, err)

	result := m.Verify(raw)
	require.Equal(t, Valid, result.Status)
	require.NotNil(t, result.Identity)
	assert.Equal(t, userID, result.Identity.UserID)
	assert.Equal(t, "alice", result.Identity.Username)
	assert.NoError(t, result.Err())
}

func TestIssueSetsTwentyFourHourExpiry(t *testing.T) {
	m := NewManager(testSecret)
	issuedAt := time.Now().Truncate(time.Second)

	raw, err := m.IssueAt(uuid.New(), "alice", issuedAt)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(TTL).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager(testSecret)

	raw, err := m.IssueAt(uuid.New(), "alice", time.Now().Add(-TTL-time.Minute))
	require.NoError(t, err)

	result := m.Verify(raw)
	assert.Equal(t, Expired, result.Status)
	assert.Nil(t, result.Identity)
	assert.ErrorIs(t, result.Err(), ErrExpiredToken)
}

func TestVerifyMissingToken(t *testing.T) {
	result := NewManager(testSecret).Verify("")
	assert.Equal(t, Missing, result.Status)
	assert.ErrorIs(t, result.Err(), ErrMissingToken)
}

func TestVerifyRejects(t *testing.T) {
	m := NewManager(testSecret)
	userID := uuid.New()

	valid, err := m.Issue(userID, "alice")
	require.NoError(t, err)

	otherSecret, err := NewManager("another-secret").Issue(userID, "alice")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	forgedPayload, err := NewManager("another-secret").Issue(uuid.New(), "mallory")
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(forgedPayload, ".")[1] + "." + parts[2]

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badUserID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"wrong secret", otherSecret},
		{"tampered payload", tampered},
		{"alg none", noneAlg},
		{"non uuid user id", badUserID},
		{"no expiry", noExpiry},
		{"garbage", "not.a.token"},
		{"single segment", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.Verify(tt.raw)
			assert.Equal(t, Invalid, result.Status)
			assert.Nil(t, result.Identity)
			assert.ErrorIs(t, result.Err(), ErrInvalidToken)
		})
	}
}

func TestExpiredWithWrongSecretIsInvalid(t *testing.T) {
	raw, err := NewManager("another-secret").IssueAt(uuid.New(), "alice", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, Invalid, NewManager(testSecret).Verify(raw).Status)
}

func TestVerifyUsesManagerClock(t *testing.T) {
	m := NewManager(testSecret)
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	raw, err := m.IssueAt(uuid.New(), "alice", issuedAt)
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(TTL - time.Minute) }
	assert.Equal(t, Valid, m.Verify(raw).Status)

	m.now = func() time.Time { return issuedAt.Add(TTL + time.Minute) }
	assert.Equal(t, Expired, m.Verify(raw).Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "expired", Expired.String())
}
