package ids_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"creatorhub/internal/ids"
)

func TestNewIsStrictlyIncreasing(t *testing.T) {
	prev := ids.New()
	for i := 0; i < 1000; i++ {
		next := ids.New()
		require.Greater(t, next, prev)
		prev = next
	}
}

func TestNewOpaqueIsUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := ids.NewOpaque()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
