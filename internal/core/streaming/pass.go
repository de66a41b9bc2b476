package streaming

import (
	"context"
	"time"

	"github.com/dep2p/go-lodstream/internal/core/budget"
	"github.com/dep2p/go-lodstream/internal/core/heuristic"
	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/internal/core/scheduler"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// ============================================================================
//                              轮次驱动
// ============================================================================

// Tick 推进一次处理
//
// 增量模式下每次调用从游标处继续：采集一段资源，或派发调度任务，或应用结果。
// exhaustive 为 true 时放弃未完成的轮次，同步跑完一个完整轮次。
// 仅在 ctx 结束时返回错误，已完成的阶段被保留。
func (m *Manager) Tick(ctx context.Context, deltaTime float64, exhaustive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.paused {
		return nil
	}
	if deltaTime > 0 {
		m.delta += deltaTime
	}
	m.orch.BeginFrame(exhaustive)

	if exhaustive {
		m.abortPass()
		m.collect(0)
		return m.schedule(ctx, true, true)
	}

	if m.cursor.Stage == StageCollect {
		if !m.collect(m.cfg.Throttle.CollectStages) {
			return nil
		}
	}
	if m.cursor.Stage == StageSchedule {
		return m.schedule(ctx, m.cfg.Throttle.CollectStages <= 1, false)
	}
	return m.apply(ctx)
}

// sliceSize 每帧采集的条目数
func sliceSize(total, stages int) int {
	if stages < 1 {
		stages = 1
	}
	n := (total + stages - 1) / stages
	if n < 1 {
		n = 1
	}
	return n
}

// abortPass 放弃未完成的轮次
func (m *Manager) abortPass() {
	if m.pending != nil {
		m.pending.Cancel()
		m.pending = nil
	}
	m.cursor = Cursor{Stage: StageCollect}
	m.inputs = m.inputs[:0]
}

// collect 采集一段条目，返回采集阶段是否完成
//
// stages 为 0 时一次采集全部。资源表只在轮次开始（游标位于 0）时同步。
func (m *Manager) collect(stages int) bool {
	if m.cursor.Index == 0 {
		m.registry.SyncPendingChanges()
		m.inputs = m.inputs[:0]
		m.passStart = m.clock.Now()
	}

	total := m.registry.Len()
	end := total
	if stages > 0 {
		end = m.cursor.Index + sliceSize(total, stages)
		if end > total {
			end = total
		}
	}
	for i := m.cursor.Index; i < end; i++ {
		e := m.registry.At(i)
		if e == nil {
			continue
		}
		m.orch.Poll(e)
		m.inputs = append(m.inputs, snapshot(e))
	}
	m.cursor.Index = end

	if end < total {
		return false
	}
	m.cursor = Cursor{Stage: StageSchedule}
	return true
}

// snapshot 生成调度输入，并重置本轮放大系数
func snapshot(e *registry.Entry) heuristic.Input {
	in := heuristic.Input{
		Index:         e.Index(),
		ID:            e.ID(),
		Class:         e.Class,
		LevelCount:    e.LevelCount,
		Resident:      e.Resident,
		Requested:     e.Requested,
		InFlight:      e.InFlight,
		Sizes:         e.SizeTable(),
		LastUsed:      e.LastUsed,
		OrphanedAt:    e.OrphanedAt,
		ForceRefCount: e.ForceRefCount,
		ForceUntil:    e.ForceUntil,
		Boost:         e.Boost,
	}
	e.Boost = 1
	return in
}

// schedule 解析视点并派发调度任务
func (m *Manager) schedule(ctx context.Context, sync, exhaustive bool) error {
	pool := m.queryPool()
	availableNow, _ := m.allocator.Available(pool)
	fudge := m.allocator.Fudge().Update(availableNow, m.delta)

	job := &scheduler.Job{
		Pass:   m.pass + 1,
		Inputs: m.inputs,
		Env: heuristic.Env{
			Now:        m.clock.Now(),
			Views:      m.views.Resolve(m.delta),
			Placements: m.placements.Snapshot(),
			Fudge:      fudge,
		},
		DisregardWorld: m.disregardLeft > 0,
	}
	m.exhaustive = exhaustive

	if !sync {
		m.pending = m.scheduler.Start(context.Background(), job)
		m.cursor = Cursor{Stage: StageApply}
		return nil
	}

	res, err := m.scheduler.Run(ctx, job)
	if err != nil {
		m.abortPass()
		return err
	}
	m.finish(res)
	return nil
}

// apply 等待调度结果并应用
func (m *Manager) apply(ctx context.Context) error {
	if m.pending == nil {
		m.cursor = Cursor{Stage: StageCollect}
		return nil
	}
	res, err := m.pending.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		logger.Warn("调度任务失败，重新开始轮次", "err", err)
		m.abortPass()
		return nil
	}
	m.pending = nil
	m.finish(res)
	return nil
}

// queryPool 查询池内存，不支持时返回无限池
func (m *Manager) queryPool() types.PoolMemory {
	if m.pool == nil {
		return types.PoolMemory{}
	}
	mem, ok := m.pool.QueryPoolMemory()
	if !ok {
		return types.PoolMemory{}
	}
	mem.Supported = true
	return mem
}

// ============================================================================
//                              应用结果
// ============================================================================

// finish 应用调度建议，运行预算分配并更新统计
func (m *Manager) finish(res *scheduler.Result) {
	now := m.clock.Now()

	stale := 0
	for i := range res.Advice {
		a := &res.Advice[i]
		e := m.registry.At(a.Index)
		if e == nil || e.ID() != a.ID {
			stale++
			continue
		}
		e.MinAllowed, e.MaxAllowed = a.MinAllowed, a.MaxAllowed
		if a.Excluded {
			e.Wanted = clamp(e.Resident, a.MinAllowed, a.MaxAllowed)
		} else {
			e.Wanted = clamp(a.Wanted, a.MinAllowed, a.MaxAllowed)
		}
		e.Heuristic = a.Heuristic
		e.MinDistance = a.Distance
		e.Priority = a.Priority
	}

	candidates := make([]*registry.Entry, 0, len(res.Candidates))
	for _, idx := range res.Candidates {
		a := &res.Advice[idx]
		if e := m.registry.At(a.Index); e != nil && e.ID() == a.ID {
			candidates = append(candidates, e)
		}
	}

	pool := m.queryPool()
	before := m.orch.Counters()
	out := m.allocator.Allocate(budget.Plan{
		Candidates: candidates,
		Pool:       pool,
		Now:        now,
		Exhaustive: m.exhaustive,
	}, m.orch)
	after := m.orch.Counters()

	grows, inFlight := 0, 0
	m.registry.Range(func(e *registry.Entry) bool {
		if e.InFlight {
			inFlight++
			if e.Requested > e.Resident {
				grows++
			}
		}
		return true
	})
	m.allocator.Gates().EndPass(now, grows)
	if m.disregardLeft > 0 {
		m.disregardLeft--
	}

	m.pass++
	agg := &res.Stats
	prevSuspended := m.stats.Suspended
	m.stats = types.Stats{
		Pass:            m.pass,
		Tracked:         len(res.Advice),
		Candidates:      len(candidates),
		Wanting:         agg.Wanting,
		InFlight:        inFlight,
		ResidentBytes:   agg.ResidentBytes,
		WantedBytes:     agg.WantedBytes,
		PendingInBytes:  agg.PendingInBytes,
		PendingOutBytes: agg.PendingOutBytes,
		WantedInBytes:   agg.WantedInBytes,
		WantedOutBytes:  agg.WantedOutBytes,
		TempBytes:       out.Temp,
		Pool:            pool,
		AvailableNow:    out.AvailableNow,
		AvailableLater:  out.AvailableLater,
		FudgeFactor:     m.allocator.Fudge().Value(),
		Issued:          int(after.Issued - before.Issued),
		Cancelled:       int(after.Cancelled - before.Cancelled),
		Rejected:        int(after.Rejected - before.Rejected),
		Deferred:        int(after.Deferred - before.Deferred),
		Suspended:       out.Suspended,
		PassDuration:    m.clock.Since(m.passStart),
		HeuristicBytes:  agg.HeuristicMap(),
	}

	if m.reporter != nil {
		m.reporter.ReportPass(m.stats)
	}
	if m.bus != nil {
		if out.Suspended && !prevSuspended {
			m.bus.Publish(&types.EvtGrowthSuspended{
				BaseEvent:    types.NewBaseEvent(types.EventGrowthSuspended, now),
				AvailableNow: out.AvailableNow,
				Passes:       m.cfg.Budget.SuspendPasses,
			})
		}
		m.bus.Publish(&types.EvtPassCompleted{
			BaseEvent: types.NewBaseEvent(types.EventPassCompleted, now),
			Stats:     m.stats,
		})
	}

	logger.Debug("轮次完成",
		"pass", m.pass,
		"tracked", m.stats.Tracked,
		"candidates", m.stats.Candidates,
		"issued", m.stats.Issued,
		"cancelled", m.stats.Cancelled,
		"deferred", m.stats.Deferred,
		"stale", stale,
		"availableNow", out.AvailableNow,
		"fudge", m.stats.FudgeFactor)

	m.cursor = Cursor{Stage: StageCollect}
	m.delta = 0
	m.exhaustive = false
}

// BlockUntilSettled 轮询直到没有进行中的传输或超时，返回仍在进行的数量
//
// 期间不发起任何新请求。
func (m *Manager) BlockUntilSettled(ctx context.Context, timeLimit time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]*registry.Entry, 0, m.registry.Len())
	m.registry.Range(func(e *registry.Entry) bool {
		entries = append(entries, e)
		return true
	})
	return m.orch.BlockUntilSettled(ctx, entries, timeLimit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
