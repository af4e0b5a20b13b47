package store

import "github.com/jobsift/jobsift/internal/model"

var _ model.JobSet = (*MemorySet)(nil)

// MemorySet is an in-process job set. It backs dry runs and serves as the
// degraded mode when the on-disk set cannot be opened: the run still produces
// its outputs, it just cannot diff against history.
type MemorySet struct {
	rows map[string]model.NormalizedRow
}

func NewMemorySet() *MemorySet {
	return &MemorySet{rows: make(map[string]model.NormalizedRow)}
}

func (m *MemorySet) SeenKeys() (map[string]struct{}, error) {
	keys := make(map[string]struct{}, len(m.rows))
	for k := range m.rows {
		keys[k] = struct{}{}
	}
	return keys, nil
}

func (m *MemorySet) Add(rows []model.NormalizedRow) error {
	for _, r := range rows {
		k := r.Key()
		if _, ok := m.rows[k]; !ok {
			m.rows[k] = r
		}
	}
	return nil
}

func (m *MemorySet) Close() error { return nil }
