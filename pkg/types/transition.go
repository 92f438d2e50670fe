package types

// Transition describes one role-driven change to apply during
// reconciliation. Location must come from the LocateAll snapshot the
// reconcile run was seeded with; indices from older snapshots are stale once
// any deletion has happened in the same partition.
type Transition struct {
	Location Location
	Record   Record
	NewRole  string
}

// ReconcileResult counts what a reconcile run did. Removals of members whose
// role no longer resolves are counted as updates.
type ReconcileResult struct {
	Updated int
	Moved   int
}

// RefreshReport summarizes a full role refresh: the snapshot size, how many
// rows needed no change, and the reconcile counts.
type RefreshReport struct {
	Scanned   int
	Unchanged int
	Result    ReconcileResult
}
