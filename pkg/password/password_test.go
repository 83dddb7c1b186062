package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("password123")
	require.NoError(t, err)

	assert.True(t, Verify("password123", digest))
	assert.False(t, Verify("password124", digest))
	assert.False(t, Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-input")
	require.NoError(t, err)
	second, err := Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify("same-input", first))
	assert.True(t, Verify("same-input", second))
}

func TestHashUsesConfiguredCost(t *testing.T) {
	digest, err := Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestVerifyMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"garbage", "not-a-bcrypt-hash"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, Verify("password123", tt.digest))
			})
		})
	}
}

func TestHashRejectsOverlongInput(t *testing.T) {
	_, err := Hash(strings.Repeat("a", 73))
	assert.Error(t, err)

	_, err = Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}
