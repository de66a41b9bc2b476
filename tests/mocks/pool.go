package mocks

import (
	"sync"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// MockMemoryPool 模拟 MemoryPool 接口实现
type MockMemoryPool struct {
	mu sync.Mutex

	// Stats 返回的池状态
	Stats types.PoolMemory

	// Unsupported 为 true 时报告不支持内存统计
	Unsupported bool

	// 可覆盖的方法
	QueryFunc func() (types.PoolMemory, bool)

	// 调用记录
	QueryCalls int
}

// NewMockMemoryPool 创建固定大小的 MockMemoryPool
func NewMockMemoryPool(allocated, free int64) *MockMemoryPool {
	return &MockMemoryPool{
		Stats: types.PoolMemory{Supported: true, Allocated: allocated, Free: free},
	}
}

// QueryPoolMemory 返回池状态
func (m *MockMemoryPool) QueryPoolMemory() (types.PoolMemory, bool) {
	m.mu.Lock()
	m.QueryCalls++
	fn := m.QueryFunc
	stats, unsupported := m.Stats, m.Unsupported
	m.mu.Unlock()

	if fn != nil {
		return fn()
	}
	if unsupported {
		return types.PoolMemory{}, false
	}
	stats.Supported = true
	return stats, true
}

// Set 更新池状态
func (m *MockMemoryPool) Set(allocated, free, pending int64) {
	m.mu.Lock()
	m.Stats = types.PoolMemory{Supported: true, Allocated: allocated, Free: free, PendingAdjustment: pending}
	m.mu.Unlock()
}
