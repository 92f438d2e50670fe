package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// memTable is an in-memory TableAPI for engine tests. It stores each
// partition as a header plus data rows and understands exactly the ranges
// the types range helpers produce. Every mutating call is appended to an op
// log so tests can assert on call ordering.
type memTable struct {
	mu   sync.Mutex
	tabs map[types.Partition]*memTab
	ops  []string
}

type memTab struct {
	header []string
	rows   [][]string
}

func newMemTable(partitions ...types.Partition) *memTable {
	m := &memTable{tabs: make(map[types.Partition]*memTab)}
	for _, p := range partitions {
		m.tabs[p] = &memTab{header: append([]string(nil), types.Header...)}
	}
	return m
}

// seed appends records to a partition without touching the op log.
func (m *memTable) seed(p types.Partition, recs ...types.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.tabs[p]
	for _, rec := range recs {
		tab.rows = append(tab.rows, rec.Cells())
	}
}

// records returns the partition's rows parsed back into Records.
func (m *memTable) records(p types.Partition) []types.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab := m.tabs[p]
	if tab == nil {
		return nil
	}
	recs := make([]types.Record, 0, len(tab.rows))
	for _, row := range tab.rows {
		recs = append(recs, types.RecordFromCells(row))
	}
	return recs
}

// opLog returns a copy of the mutation log.
func (m *memTable) opLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

func (m *memTable) Read(_ context.Context, p types.Partition, rowRange string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, ok := m.tabs[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrPartitionUnknown, p)
	}
	switch rowRange {
	case types.HeaderRange:
		if tab.header == nil {
			return nil, nil
		}
		return [][]string{append([]string(nil), tab.header...)}, nil
	case types.DataRange:
		out := make([][]string, len(tab.rows))
		for i, row := range tab.rows {
			out[i] = append([]string(nil), row...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("memTable: unsupported read range %q", rowRange)
	}
}

func (m *memTable) Write(_ context.Context, p types.Partition, rowRange string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, ok := m.tabs[p]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPartitionUnknown, p)
	}
	m.ops = append(m.ops, fmt.Sprintf("write:%s:%s", p, rowRange))

	if rowRange == types.HeaderRange {
		tab.header = append([]string(nil), rows[0]...)
		return nil
	}

	var start, end int
	if _, err := fmt.Sscanf(rowRange, "A%d:D%d", &start, &end); err == nil {
		idx := start - 2 // sheet row to 0-based data index
		if idx < 0 || idx >= len(tab.rows) {
			return fmt.Errorf("memTable: write out of range %q", rowRange)
		}
		tab.rows[idx] = append([]string(nil), rows[0]...)
		return nil
	}
	var sheetRow int
	if _, err := fmt.Sscanf(rowRange, "D%d", &sheetRow); err == nil {
		idx := sheetRow - 2
		if idx < 0 || idx >= len(tab.rows) {
			return fmt.Errorf("memTable: write out of range %q", rowRange)
		}
		tab.rows[idx][types.ColRole] = rows[0][0]
		return nil
	}
	return fmt.Errorf("memTable: unsupported write range %q", rowRange)
}

func (m *memTable) Append(_ context.Context, p types.Partition, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, ok := m.tabs[p]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPartitionUnknown, p)
	}
	m.ops = append(m.ops, fmt.Sprintf("append:%s", p))
	for _, row := range rows {
		tab.rows = append(tab.rows, append([]string(nil), row...))
	}
	return nil
}

func (m *memTable) DeleteRow(_ context.Context, p types.Partition, rowIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tab, ok := m.tabs[p]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrPartitionUnknown, p)
	}
	m.ops = append(m.ops, fmt.Sprintf("delete:%s:%d", p, rowIndex))
	idx := rowIndex - 1
	if idx < 0 || idx >= len(tab.rows) {
		return fmt.Errorf("memTable: delete out of range %d", rowIndex)
	}
	tab.rows = append(tab.rows[:idx], tab.rows[idx+1:]...)
	return nil
}

func (m *memTable) ListPartitions(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.tabs))
	for p := range m.tabs {
		names = append(names, string(p))
	}
	return names, nil
}

func (m *memTable) CreatePartition(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, fmt.Sprintf("create:%s", name))
	m.tabs[types.Partition(name)] = &memTab{}
	return nil
}
