package streaming

import (
	"sort"

	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// ============================================================================
//                              诊断
// ============================================================================

// Stats 返回最近一轮统计
func (m *Manager) Stats() types.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	if s.HeuristicBytes != nil {
		s.HeuristicBytes = make(map[string]int64, len(m.stats.HeuristicBytes))
		for k, v := range m.stats.HeuristicBytes {
			s.HeuristicBytes[k] = v
		}
	}
	return s
}

// Inspect 返回单个资源的诊断快照
func (m *Manager) Inspect(id types.ResourceID) (types.ResourceReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.registry.Lookup(id)
	if !ok {
		return types.ResourceReport{}, false
	}
	r := e.Report()
	r.Latencies = m.orch.Latencies(id)
	return r, true
}

// Resources 返回所有已同步资源的诊断快照，按优先级降序
func (m *Manager) Resources() []types.ResourceReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]*registry.Entry, 0, m.registry.Len())
	m.registry.Range(func(e *registry.Entry) bool {
		entries = append(entries, e)
		return true
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})

	out := make([]types.ResourceReport, len(entries))
	for i, e := range entries {
		out[i] = e.Report()
	}
	return out
}

// Pass 返回已完成的轮次数
func (m *Manager) Pass() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pass
}
