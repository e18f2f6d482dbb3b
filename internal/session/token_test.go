package session

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenLengthAndEncoding(t *testing.T) {
	tok, err := NewToken()
	require.NoError(t, err)

	raw, err := hex.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32, "tokens carry 256 bits of entropy")
}

func TestNewTokenIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		tok, err := NewToken()
		require.NoError(t, err)

		_, dup := seen[tok]
		require.False(t, dup, "token collision")
		seen[tok] = struct{}{}
	}
}
