package streaming

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/budget"
	"github.com/dep2p/go-lodstream/internal/core/heuristic"
	"github.com/dep2p/go-lodstream/internal/core/orchestrator"
	"github.com/dep2p/go-lodstream/internal/core/placement"
	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/internal/core/scheduler"
	"github.com/dep2p/go-lodstream/internal/core/view"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/streaming")

// Manager 流式管理器
type Manager struct {
	mu sync.Mutex

	cfg      *config.Config
	clock    clock.Clock
	pool     interfaces.MemoryPool
	bus      interfaces.EventBus
	reporter interfaces.Reporter

	views      *view.Aggregator
	registry   *registry.Registry
	placements *placement.Store
	scheduler  *scheduler.Scheduler
	allocator  *budget.Allocator
	orch       *orchestrator.Orchestrator

	// 轮次状态
	cursor     Cursor
	pass       uint64
	passStart  time.Time
	delta      float64
	inputs     []heuristic.Input
	pending    *scheduler.Pending
	exhaustive bool

	disregardLeft int
	paused        bool
	closed        bool

	stats types.Stats
}

var _ interfaces.StreamingManager = (*Manager)(nil)

// New 创建流式管理器
//
// pool 为 nil 时以无限池模式运行。cfg 为 nil 时使用默认配置。
func New(cfg *config.Config, transfer interfaces.TransferLayer, pool interfaces.MemoryPool, opts ...Option) (*Manager, error) {
	if transfer == nil {
		return nil, ErrNilTransferLayer
	}
	if cfg == nil {
		cfg = config.NewConfig()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = clock.New()
	}

	tracker := budget.NewTracker()
	orchOpts := []orchestrator.Option{}
	if o.bus != nil {
		orchOpts = append(orchOpts, orchestrator.WithEventBus(o.bus))
	}
	if o.reporter != nil {
		orchOpts = append(orchOpts, orchestrator.WithReporter(o.reporter))
	}
	orch, err := orchestrator.New(orchestrator.ConfigFromUnified(cfg), transfer, tracker, o.clock, orchOpts...)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:        cfg,
		clock:      o.clock,
		pool:       pool,
		bus:        o.bus,
		reporter:   o.reporter,
		views:      view.New(view.ConfigFromUnified(cfg)),
		registry:   registry.New(),
		placements: placement.NewStore(),
		scheduler:  scheduler.New(scheduler.ConfigFromUnified(cfg)),
		allocator:  budget.NewAllocator(budget.ConfigFromUnified(cfg), tracker),
		orch:       orch,
	}

	logger.Info("流式管理器已创建",
		"memoryMargin", cfg.Budget.MemoryMarginBytes,
		"collectStages", cfg.Throttle.CollectStages,
		"workers", cfg.Throttle.Workers,
		"limitedPool", pool != nil)
	return m, nil
}

// Close 关闭管理器，取消进行中的调度任务
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.abortPass()
	logger.Info("流式管理器已关闭", "passes", m.pass)
	return nil
}

// Config 返回配置副本
func (m *Manager) Config() *config.Config {
	return m.cfg.Clone()
}

// Cursor 返回当前轮次游标
func (m *Manager) Cursor() Cursor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// ============================================================================
//                              视点
// ============================================================================

// SubmitView 提交视点
func (m *Manager) SubmitView(origin types.Vector, screenSize, fovScreenSize, boost float64, override bool, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views.SubmitView(origin, screenSize, fovScreenSize, boost, override, duration)
}

// SubmitSlaveLocation 提交从属位置
func (m *Manager) SubmitSlaveLocation(origin types.Vector, boost float64, override bool, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views.SubmitSlaveLocation(origin, boost, override, duration)
}

// SetPaused 暂停/恢复流式
func (m *Manager) SetPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.paused != paused {
		logger.Info("流式暂停状态变更", "paused", paused)
	}
	m.paused = paused
}

// ============================================================================
//                              资源
// ============================================================================

// RegisterResource 注册资源
func (m *Manager) RegisterResource(res interfaces.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	_, err := m.registry.Register(res, m.clock.Now())
	return err
}

// UnregisterResource 注销资源
func (m *Manager) UnregisterResource(id types.ResourceID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.registry.Unregister(id) {
		return false
	}
	m.orch.Forget(id)
	return true
}

// Pin 增加强制常驻引用计数
func (m *Manager) Pin(id types.ResourceID) bool {
	return m.update(id, func(e *registry.Entry) {
		e.ForceRefCount++
	})
}

// Unpin 减少强制常驻引用计数
func (m *Manager) Unpin(id types.ResourceID) bool {
	ok := false
	m.update(id, func(e *registry.Entry) {
		if e.ForceRefCount > 0 {
			e.ForceRefCount--
			ok = true
		}
	})
	return ok
}

// Boost 设置资源本轮放大系数（取较大值）
func (m *Manager) Boost(id types.ResourceID, factor float64) bool {
	if factor <= 0 {
		return false
	}
	return m.update(id, func(e *registry.Entry) {
		if factor > e.Boost {
			e.Boost = factor
		}
	})
}

// Touch 记录资源被绘制
func (m *Manager) Touch(id types.ResourceID) bool {
	return m.update(id, func(e *registry.Entry) {
		if now := m.clock.Now(); now.After(e.LastUsed) {
			e.LastUsed = now
		}
	})
}

// ForceResidentFor 在 d 时间内强制常驻
func (m *Manager) ForceResidentFor(id types.ResourceID, d time.Duration) bool {
	if d <= 0 {
		return false
	}
	return m.update(id, func(e *registry.Entry) {
		if until := m.clock.Now().Add(d); until.After(e.ForceUntil) {
			e.ForceUntil = until
		}
	})
}

// CancelForcedResources 清除所有定时强制常驻
func (m *Manager) CancelForcedResources() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	m.registry.RangeAll(func(e *registry.Entry) bool {
		if !e.ForceUntil.IsZero() {
			e.ForceUntil = time.Time{}
			n++
		}
		return true
	})
	logger.Debug("已清除定时强制常驻", "count", n)
}

// StreamOut 紧急驱逐
//
// 计划中的轮次被放弃，下一次 Tick 从采集阶段重新开始。
func (m *Manager) StreamOut(required int64) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.abortPass()
	entries := make([]*registry.Entry, 0, m.registry.Len())
	m.registry.Range(func(e *registry.Entry) bool {
		m.orch.Poll(e)
		entries = append(entries, e)
		return true
	})

	m.orch.BeginFrame(true)
	return m.allocator.Evict(budget.EvictRequest{
		Entries:  entries,
		Required: required,
		Now:      m.clock.Now(),
		Spare:    m.cfg.Classes.IsPriority,
	}, m.orch)
}

// update 在锁内修改单个条目
func (m *Manager) update(id types.ResourceID, fn func(e *registry.Entry)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.registry.Lookup(id)
	if !ok {
		return false
	}
	fn(e)
	return true
}

// ============================================================================
//                              放置
// ============================================================================

// AddLevel 添加关卡静态放置
//
// 重新获得静态放置的资源不再处于孤儿状态。
func (m *Manager) AddLevel(id types.LevelID, instances []types.StaticInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.placements.AddLevel(id, instances); err != nil {
		return err
	}
	for _, inst := range instances {
		if e, ok := m.registry.Lookup(inst.Resource); ok {
			e.OrphanedAt = time.Time{}
		}
	}
	return nil
}

// RemoveLevel 移除关卡，失去全部静态放置的资源进入孤儿状态
func (m *Manager) RemoveLevel(id types.LevelID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	orphans, ok := m.placements.RemoveLevel(id)
	if !ok {
		return false
	}
	now := m.clock.Now()
	for _, rid := range orphans {
		if e, found := m.registry.Lookup(rid); found {
			e.OrphanedAt = now
		}
	}
	logger.Debug("关卡已移除", "level", id, "orphans", len(orphans))
	return true
}

// AttachDynamic 挂接动态放置
func (m *Manager) AttachDynamic(owner types.OwnerID, instances []types.DynamicInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placements.Attach(owner, instances)
}

// UpdateDynamic 更新动态放置
func (m *Manager) UpdateDynamic(owner types.OwnerID, instances []types.DynamicInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placements.Update(owner, instances)
}

// DetachDynamic 解除动态放置
func (m *Manager) DetachDynamic(owner types.OwnerID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placements.Detach(owner)
}

// BoostOwner 放大所有者引用的全部资源
//
// factor <= 0 时使用 BoostPlayerFactor。
func (m *Manager) BoostOwner(owner types.OwnerID, factor float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if factor <= 0 {
		factor = m.cfg.Heuristics.BoostPlayerFactor
	}
	ids := m.placements.OwnerResources(owner)
	if ids == nil {
		return false
	}
	for _, id := range ids {
		if e, ok := m.registry.Lookup(id); ok && factor > e.Boost {
			e.Boost = factor
		}
	}
	return true
}

// ============================================================================
//                              关卡切换
// ============================================================================

// NotifyLevelChange 通知关卡切换，启用最小请求限制
func (m *Manager) NotifyLevelChange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocator.Gates().NotifyLevelChange(m.clock.Now())
	logger.Info("关卡切换，启用最小请求限制", "minRequestLevels", m.cfg.Budget.MinRequestLevels)
}

// DisregardWorldResources 在接下来 passes 轮内忽略非优先类别资源
func (m *Manager) DisregardWorldResources(passes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if passes < 0 {
		passes = 0
	}
	m.disregardLeft = passes
}
