package auth

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Generate(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, CodeLength)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = true
	}

	// 200 draws from a 900k space should not collapse to a handful of values.
	require.Greater(t, len(seen), 150)
}
