package mocks

import (
	"sync"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// BeginCall 记录一次 BeginLevelChange 调用
type BeginCall struct {
	ID           types.ResourceID
	Target       int
	PrioritizeIO bool
}

// MockTransferLayer 模拟 TransferLayer 接口实现
//
// 默认行为：发起后状态为进行中，取消总是成功，FinishAll 完成所有传输。
type MockTransferLayer struct {
	mu sync.Mutex

	// 可覆盖的方法
	BeginFunc  func(res interfaces.Resource, target int, prioritizeIO bool) error
	CancelFunc func(res interfaces.Resource) bool
	PollFunc   func(res interfaces.Resource) types.TransferStatus

	// 调用记录
	BeginCalls  []BeginCall
	CancelCalls []types.ResourceID
	PollCalls   int

	inflight map[types.ResourceID]inflight
}

type inflight struct {
	res    interfaces.Resource
	target int
}

// NewMockTransferLayer 创建 MockTransferLayer
func NewMockTransferLayer() *MockTransferLayer {
	return &MockTransferLayer{
		inflight: make(map[types.ResourceID]inflight),
	}
}

// BeginLevelChange 发起等级变更
func (m *MockTransferLayer) BeginLevelChange(res interfaces.Resource, target int, prioritizeIO bool) error {
	m.mu.Lock()
	m.BeginCalls = append(m.BeginCalls, BeginCall{ID: res.ID(), Target: target, PrioritizeIO: prioritizeIO})
	fn := m.BeginFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(res, target, prioritizeIO); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.inflight[res.ID()] = inflight{res: res, target: target}
	m.mu.Unlock()
	return nil
}

// CancelLevelChange 取消等级变更
func (m *MockTransferLayer) CancelLevelChange(res interfaces.Resource) bool {
	m.mu.Lock()
	m.CancelCalls = append(m.CancelCalls, res.ID())
	fn := m.CancelFunc
	m.mu.Unlock()

	if fn != nil && !fn(res) {
		return false
	}

	m.mu.Lock()
	delete(m.inflight, res.ID())
	m.mu.Unlock()
	return true
}

// PollTransferStatus 查询传输状态
func (m *MockTransferLayer) PollTransferStatus(res interfaces.Resource) types.TransferStatus {
	m.mu.Lock()
	m.PollCalls++
	fn := m.PollFunc
	_, ok := m.inflight[res.ID()]
	m.mu.Unlock()

	if fn != nil {
		return fn(res)
	}
	if ok {
		return types.TransferInFlight
	}
	return types.TransferIdle
}

// InFlight 返回进行中的传输数
func (m *MockTransferLayer) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inflight)
}

// Finish 完成单个资源的传输，把常驻等级设置为目标等级
func (m *MockTransferLayer) Finish(id types.ResourceID) bool {
	m.mu.Lock()
	f, ok := m.inflight[id]
	delete(m.inflight, id)
	m.mu.Unlock()

	if ok {
		if r, isMock := f.res.(*MockResource); isMock {
			r.SetResident(f.target)
		}
	}
	return ok
}

// FinishAll 完成所有进行中的传输
func (m *MockTransferLayer) FinishAll() int {
	m.mu.Lock()
	ids := make([]types.ResourceID, 0, len(m.inflight))
	for id := range m.inflight {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Finish(id)
	}
	return len(ids)
}

// BeginCount 返回发起调用次数
func (m *MockTransferLayer) BeginCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.BeginCalls)
}

// ResetCalls 清空调用记录
func (m *MockTransferLayer) ResetCalls() {
	m.mu.Lock()
	m.BeginCalls = nil
	m.CancelCalls = nil
	m.PollCalls = 0
	m.mu.Unlock()
}
