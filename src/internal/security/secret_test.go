package security

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndMatches(t *testing.T) {
	hash, err := Hash("4567", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "4567", hash)

	ok, err := Matches(hash, "4567")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Matches(hash, "4568")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchesIsExact(t *testing.T) {
	hash, err := Hash("1234", bcrypt.MinCost)
	require.NoError(t, err)

	for _, candidate := range []string{"", " 1234", "1234 ", "123", "12345"} {
		ok, err := Matches(hash, candidate)
		require.NoError(t, err)
		require.False(t, ok, "candidate %q", candidate)
	}
}

func TestMatchesMalformedHash(t *testing.T) {
	_, err := Matches("not-a-hash", "1234")
	require.Error(t, err)
}
