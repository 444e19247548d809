package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsuruki/cardforge-server/internal/testutil"
)

func TestResolveSecret_Configured(t *testing.T) {
	secret, err := ResolveSecret("configured-secret", testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.Equal(t, "configured-secret", secret)
}

func TestResolveSecret_Ephemeral(t *testing.T) {
	secret, err := ResolveSecret("", testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.Len(t, secret, 64)

	other, err := ResolveSecret("", testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}
