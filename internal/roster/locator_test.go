package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// setupStore builds a Store over a fresh memTable seeded with the three
// standard partitions.
func setupStore(t *testing.T) (*Store, *memTable) {
	t.Helper()
	mem := newMemTable("OG Wallets", "Monadian Wallets", "Community Wallets")
	store := NewStore(mem, NewResolver(testMappings), zap.NewNop())
	return store, mem
}

func rec(username, userID, wallet, role string) types.Record {
	return types.Record{Username: username, UserID: userID, Wallet: wallet, Role: role}
}

func TestLocate(t *testing.T) {
	ctx := context.Background()
	store, mem := setupStore(t)
	mem.seed("Monadian Wallets",
		rec("alice", "u1", "0xaaa", "Monadian"),
		rec("bob", "u2", "0xbbb", "Monadian"),
	)

	t.Run("finds row with correct location", func(t *testing.T) {
		row, err := store.Locate(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, types.Location{Partition: "Monadian Wallets", Row: 2}, row.Location)
		assert.Equal(t, "bob", row.Record.Username)
		assert.Equal(t, "0xbbb", row.Record.Wallet)
	})

	t.Run("absent user returns ErrNotFound", func(t *testing.T) {
		_, err := store.Locate(ctx, "nobody")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("empty user id rejected", func(t *testing.T) {
		_, err := store.Locate(ctx, "")
		assert.ErrorIs(t, err, types.ErrInvalidUserID)
	})
}

func TestLocatePriorityOrder(t *testing.T) {
	ctx := context.Background()
	store, mem := setupStore(t)

	// The same user in two partitions: the higher-priority partition wins.
	mem.seed("OG Wallets", rec("alice", "u1", "0xold", "OG"))
	mem.seed("Community Wallets", rec("alice", "u1", "0xnew", "Community"))

	row, err := store.Locate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, types.Partition("OG Wallets"), row.Location.Partition)
	assert.Equal(t, "0xold", row.Record.Wallet)
}

func TestLocateAll(t *testing.T) {
	ctx := context.Background()
	store, mem := setupStore(t)
	mem.seed("OG Wallets", rec("carol", "u3", "0xccc", "OG"))
	mem.seed("Monadian Wallets",
		rec("alice", "u1", "0xaaa", "Monadian"),
		rec("bob", "u2", "0xbbb", "Monadian"),
	)

	rows, err := store.LocateAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Priority order across partitions, sheet order within.
	assert.Equal(t, "u3", rows[0].Record.UserID)
	assert.Equal(t, types.Location{Partition: "OG Wallets", Row: 1}, rows[0].Location)
	assert.Equal(t, "u1", rows[1].Record.UserID)
	assert.Equal(t, "u2", rows[2].Record.UserID)
	assert.Equal(t, types.Location{Partition: "Monadian Wallets", Row: 2}, rows[2].Location)
}

func TestLocateAllSkipsEmptyRows(t *testing.T) {
	ctx := context.Background()
	store, mem := setupStore(t)
	mem.seed("OG Wallets", rec("carol", "u3", "0xccc", "OG"))
	mem.seed("OG Wallets", types.Record{}) // blank row left by a manual edit
	mem.seed("OG Wallets", rec("dave", "u4", "0xddd", "OG"))

	rows, err := store.LocateAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// The blank row still occupies an index.
	assert.Equal(t, 3, rows[1].Location.Row)
}
