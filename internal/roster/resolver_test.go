package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// testMappings is the fixture used across the roster tests: three roles in
// priority order, three partitions.
var testMappings = []types.RoleMapping{
	{Role: "OG", Partition: "OG Wallets"},
	{Role: "Monadian", Partition: "Monadian Wallets"},
	{Role: "Community", Partition: "Community Wallets"},
}

func TestResolverResolve(t *testing.T) {
	r := NewResolver(testMappings)

	tests := []struct {
		name  string
		label string
		want  types.Partition
		ok    bool
	}{
		{name: "exact label", label: "OG", want: "OG Wallets", ok: true},
		{name: "lowercase", label: "og", want: "OG Wallets", ok: true},
		{name: "mixed case", label: "mOnAdIaN", want: "Monadian Wallets", ok: true},
		{name: "surrounding whitespace", label: "  Community ", want: "Community Wallets", ok: true},
		{name: "unknown label", label: "Lurker", ok: false},
		{name: "empty string", label: "", ok: false},
		{name: "whitespace only", label: "   ", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolverDeterministic(t *testing.T) {
	r := NewResolver(testMappings)
	first, ok1 := r.Resolve("Monadian")
	second, ok2 := r.Resolve("MONADIAN")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestResolverPartitionsOrder(t *testing.T) {
	r := NewResolver(testMappings)
	assert.Equal(t, []types.Partition{"OG Wallets", "Monadian Wallets", "Community Wallets"}, r.Partitions())
}
