package sim

import (
	"sync"

	"github.com/pbnjay/memory"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Pool 固定容量的内存池
type Pool struct {
	mu        sync.Mutex
	capacity  int64
	allocated int64
	peak      int64
}

var _ interfaces.MemoryPool = (*Pool)(nil)

// NewPool 创建内存池
func NewPool(capacity int64) *Pool {
	return &Pool{capacity: capacity}
}

// DefaultCapacity 返回按本机物理内存推算的池容量（物理内存的 1/8）
//
// 无法获取物理内存时返回 256 MiB。
func DefaultCapacity() int64 {
	total := memory.TotalMemory()
	if total == 0 {
		return 256 << 20
	}
	return int64(total / 8)
}

// QueryPoolMemory 返回池内存状态
func (p *Pool) QueryPoolMemory() (types.PoolMemory, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return types.PoolMemory{
		Supported: true,
		Allocated: p.allocated,
		Free:      p.capacity - p.allocated,
	}, true
}

// Alloc 分配字节，空间不足时返回 false
func (p *Pool) Alloc(n int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.allocated+n > p.capacity {
		return false
	}
	p.allocated += n
	if p.allocated > p.peak {
		p.peak = p.allocated
	}
	return true
}

// Release 释放字节
func (p *Pool) Release(n int64) {
	p.mu.Lock()
	p.allocated -= n
	if p.allocated < 0 {
		p.allocated = 0
	}
	p.mu.Unlock()
}

// Capacity 返回容量
func (p *Pool) Capacity() int64 {
	return p.capacity
}

// Allocated 返回已分配字节
func (p *Pool) Allocated() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}

// Peak 返回历史最高分配字节
func (p *Pool) Peak() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak
}
