package mocks

import (
	"sync"
	"time"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// MockReporter 模拟 Reporter 接口实现
type MockReporter struct {
	mu sync.Mutex

	// 调用记录
	Passes    []types.Stats
	Latencies []time.Duration
	Rejected  int
}

// ReportPass 记录轮次统计
func (m *MockReporter) ReportPass(stats types.Stats) {
	m.mu.Lock()
	m.Passes = append(m.Passes, stats)
	m.mu.Unlock()
}

// ReportTransfer 记录传输延迟
func (m *MockReporter) ReportTransfer(_ types.ResourceClass, latency time.Duration) {
	m.mu.Lock()
	m.Latencies = append(m.Latencies, latency)
	m.mu.Unlock()
}

// ReportRejected 记录拒绝
func (m *MockReporter) ReportRejected(_ types.ResourceClass) {
	m.mu.Lock()
	m.Rejected++
	m.mu.Unlock()
}

// PassCount 返回已上报轮次数
func (m *MockReporter) PassCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Passes)
}

// RejectedCount 返回拒绝次数
func (m *MockReporter) RejectedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Rejected
}
