package raid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "conflux/pkg/domain-errors"
)

func TestSplitIdentifier(t *testing.T) {
	t.Run("plain identifier", func(t *testing.T) {
		prefix, suffix, err := SplitIdentifier("https://raid.org/10.25.10.1234/a1b2c")
		require.NoError(t, err)
		assert.Equal(t, "10.25.10.1234", prefix)
		assert.Equal(t, "a1b2c", suffix)
	})

	t.Run("trailing slash tolerated", func(t *testing.T) {
		prefix, suffix, err := SplitIdentifier("https://raid.org/10.25.10.1234/a1b2c/")
		require.NoError(t, err)
		assert.Equal(t, "10.25.10.1234", prefix)
		assert.Equal(t, "a1b2c", suffix)
	})

	t.Run("missing suffix", func(t *testing.T) {
		_, _, err := SplitIdentifier("https://raid.org/10.25.10.1234")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("relative identifier", func(t *testing.T) {
		_, _, err := SplitIdentifier("10.25.10.1234/a1b2c")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("empty string", func(t *testing.T) {
		_, _, err := SplitIdentifier("")
		require.Error(t, err)
	})
}
