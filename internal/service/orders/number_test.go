package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	n := GenerateOrderNumber("BZR")

	require.True(t, strings.HasPrefix(n, "BZR-"))
	require.Equal(t, strings.ToUpper(n), n)

	parts := strings.Split(n, "-")
	require.Len(t, parts, 3)
	require.NotEmpty(t, parts[1])
	require.Len(t, parts[2], 8)
}

func TestGenerateOrderNumberUniqueness(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		num := GenerateOrderNumber("BZR")
		if _, dup := seen[num]; dup {
			t.Fatalf("duplicate order number after %d draws: %s", i, num)
		}
		seen[num] = struct{}{}
	}
}
