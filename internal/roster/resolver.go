// Package roster implements the wallet roster over the partitioned
// spreadsheet: role resolution, record location, single-record upsert and
// migration, and batch reconciliation. Every mutation is routed through one
// sequential path; only read-only role lookups run in parallel.
package roster

import (
	"strings"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// Resolver maps a role label to the partition that stores it. The mapping
// is fixed at construction, ordered highest priority first, and lookups are
// case-insensitive. Resolve is pure; anything outside the known labels,
// including the empty string, resolves to nothing.
type Resolver struct {
	order  []types.Partition
	byRole map[string]types.Partition
}

// NewResolver builds a Resolver from priority-ordered role mappings.
func NewResolver(mappings []types.RoleMapping) *Resolver {
	r := &Resolver{
		order:  make([]types.Partition, 0, len(mappings)),
		byRole: make(map[string]types.Partition, len(mappings)),
	}
	for _, m := range mappings {
		p := types.Partition(m.Partition)
		r.order = append(r.order, p)
		r.byRole[foldRole(m.Role)] = p
	}
	return r
}

// Resolve returns the partition for the given role label, or false when the
// label does not qualify a member for storage.
func (r *Resolver) Resolve(label string) (types.Partition, bool) {
	p, ok := r.byRole[foldRole(label)]
	return p, ok
}

// Partitions returns the partitions in priority order, highest first.
// Callers must not mutate the returned slice.
func (r *Resolver) Partitions() []types.Partition {
	return r.order
}

func foldRole(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
