package orchestrator

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-lodstream/internal/core/budget"
	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/orchestrator")

// Counters 累计计数
type Counters struct {
	Issued    uint64
	Cancelled uint64
	Rejected  uint64
	Deferred  uint64
	Settled   uint64
}

// Option 编排器选项
type Option func(*Orchestrator)

// WithEventBus 发布等级变更事件
func WithEventBus(bus interfaces.EventBus) Option {
	return func(o *Orchestrator) {
		o.bus = bus
	}
}

// WithReporter 上报传输延迟与拒绝
func WithReporter(r interfaces.Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// Orchestrator 流式编排器
//
// 只由控制角色调用，不做内部加锁。
type Orchestrator struct {
	cfg      Config
	transfer interfaces.TransferLayer
	tracker  *budget.Tracker
	clock    clock.Clock

	bus      interfaces.EventBus
	reporter interfaces.Reporter

	latencies *lru.Cache[types.ResourceID, []time.Duration]
	rejectLog *rate.Limiter

	exhaustive    bool
	frameBytes    int64
	frameRequests int

	counters Counters
}

var _ budget.Issuer = (*Orchestrator)(nil)

// New 创建编排器
func New(cfg Config, transfer interfaces.TransferLayer, tracker *budget.Tracker, clk clock.Clock, opts ...Option) (*Orchestrator, error) {
	if transfer == nil {
		return nil, ErrNilTransferLayer
	}
	if tracker == nil {
		return nil, ErrNilTracker
	}
	if clk == nil {
		clk = clock.New()
	}
	if cfg.LatencyHistory < 1 {
		cfg.LatencyHistory = 1
	}
	if cfg.LatencySamples < 1 {
		cfg.LatencySamples = 1
	}
	if cfg.SettlePollInterval <= 0 {
		cfg.SettlePollInterval = 10 * time.Millisecond
	}
	if cfg.RejectLogBurst < 1 {
		cfg.RejectLogBurst = 1
	}

	latencies, err := lru.New[types.ResourceID, []time.Duration](cfg.LatencyHistory)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:       cfg,
		transfer:  transfer,
		tracker:   tracker,
		clock:     clk,
		latencies: latencies,
		rejectLog: rate.NewLimiter(rate.Limit(cfg.RejectLogRate), cfg.RejectLogBurst),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// ============================================================================
//                              帧控制
// ============================================================================

// BeginFrame 重置每帧计数
//
// exhaustive 为 true 时本帧不做增长节流。
func (o *Orchestrator) BeginFrame(exhaustive bool) {
	o.exhaustive = exhaustive
	o.frameBytes = 0
	o.frameRequests = 0
}

// FrameUsage 返回本帧已发起的增长字节与请求数
func (o *Orchestrator) FrameUsage() (bytes int64, requests int) {
	return o.frameBytes, o.frameRequests
}

// Counters 返回累计计数
func (o *Orchestrator) Counters() Counters {
	return o.counters
}

// Tracker 返回记账器
func (o *Orchestrator) Tracker() *budget.Tracker {
	return o.tracker
}

// throttled 增长请求是否应推迟到下一帧
func (o *Orchestrator) throttled() bool {
	if o.exhaustive {
		return false
	}
	if o.cfg.MaxPerFrameRequests > 0 && o.frameRequests >= o.cfg.MaxPerFrameRequests {
		return true
	}
	return o.frameBytes >= o.cfg.MaxPerFrameRequestBytes
}

// ============================================================================
//                              发起与取消
// ============================================================================

// Request 发起等级变更
//
// 未就绪、已在目标等级或已有进行中传输时不做任何事。
func (o *Orchestrator) Request(e *registry.Entry, target int, prioritizeIO bool) bool {
	if e == nil || e.Removed() || e.Resource == nil {
		return false
	}
	if !e.Ready || e.InFlight || target == e.Resident {
		return false
	}
	if target < 1 || target > e.LevelCount {
		return false
	}

	grow := target > e.Resident
	if grow && o.throttled() {
		o.counters.Deferred++
		return false
	}

	if err := o.transfer.BeginLevelChange(e.Resource, target, prioritizeIO); err != nil {
		o.reject(e, target, err)
		return false
	}

	now := o.clock.Now()
	from := e.Resident
	o.tracker.Begin(e.ID(), e.Size(from), e.Size(target))

	e.Requested = target
	e.InFlight = true
	e.Ready = false
	e.IssuedAt = now

	if grow {
		o.frameBytes += e.Size(target) - e.Size(from)
		o.frameRequests++
	}
	o.counters.Issued++

	o.publish(&types.EvtLevelChangeIssued{
		BaseEvent:    types.NewBaseEvent(types.EventLevelChangeIssued, now),
		Resource:     e.ID(),
		From:         from,
		To:           target,
		PrioritizeIO: prioritizeIO,
	})
	return true
}

// reject 处理外部层拒绝
func (o *Orchestrator) reject(e *registry.Entry, target int, err error) {
	o.counters.Rejected++
	if o.rejectLog.Allow() {
		logger.Warn("传输层拒绝等级变更",
			"resource", e.ID(),
			"resident", e.Resident,
			"target", target,
			"err", err)
	}
	if o.reporter != nil {
		o.reporter.ReportRejected(e.Class)
	}
	o.publish(&types.EvtTransferRejected{
		BaseEvent: types.NewBaseEvent(types.EventTransferRejected, o.clock.Now()),
		Resource:  e.ID(),
		Target:    target,
		Err:       err,
	})
}

// Cancel 取消进行中的传输
//
// 无论成功与否，本轮都不再对该资源发起请求。失败表示传输已越过不可回退点，
// 等待其完成后重新评估。
func (o *Orchestrator) Cancel(e *registry.Entry) bool {
	if e == nil || e.Removed() || e.Resource == nil || !e.InFlight {
		return false
	}

	requested := e.Requested
	ok := o.transfer.CancelLevelChange(e.Resource)
	e.Ready = false
	e.Wanted = clampLevel(e.Resident, e.MinAllowed, e.MaxAllowed)
	if !ok {
		logger.Debug("取消过晚，等待传输完成", "resource", e.ID(), "requested", requested)
		return false
	}

	e.InFlight = false
	e.Requested = e.Resident
	o.tracker.End(e.ID())
	o.counters.Cancelled++

	o.publish(&types.EvtLevelChangeCancelled{
		BaseEvent: types.NewBaseEvent(types.EventLevelChangeCancelled, o.clock.Now()),
		Resource:  e.ID(),
		Requested: requested,
		Resident:  e.Resident,
	})
	return true
}

// Forget 注销资源时清理其记账
func (o *Orchestrator) Forget(id types.ResourceID) {
	o.tracker.End(id)
	o.latencies.Remove(id)
}

// ============================================================================
//                              轮询
// ============================================================================

// Poll 刷新资源的常驻等级与传输状态
func (o *Orchestrator) Poll(e *registry.Entry) types.TransferStatus {
	if e == nil || e.Removed() || e.Resource == nil {
		return types.TransferIdle
	}
	res := e.Resource
	status := o.transfer.PollTransferStatus(res)

	if resident := res.ResidentLevel(); resident >= 1 && resident <= e.LevelCount {
		e.Resident = resident
	}

	if status.Pending() {
		e.InFlight = true
		e.Ready = false
		return status
	}

	e.Ready = res.ReadyForTransfer()
	if e.InFlight {
		o.settle(e)
	}
	e.Requested = e.Resident
	return status
}

// settle 传输已完成
func (o *Orchestrator) settle(e *registry.Entry) {
	now := o.clock.Now()
	e.InFlight = false
	o.tracker.End(e.ID())
	o.counters.Settled++

	var latency time.Duration
	if !e.IssuedAt.IsZero() {
		latency = now.Sub(e.IssuedAt)
		o.recordLatency(e.ID(), latency)
		if o.reporter != nil {
			o.reporter.ReportTransfer(e.Class, latency)
		}
	}

	o.publish(&types.EvtLevelChangeSettled{
		BaseEvent: types.NewBaseEvent(types.EventLevelChangeSettled, now),
		Resource:  e.ID(),
		Resident:  e.Resident,
		Latency:   latency,
	})
}

// BlockUntilSettled 轮询直到没有进行中的传输
//
// timeLimit <= 0 表示不限时。返回仍在进行中的传输数。
func (o *Orchestrator) BlockUntilSettled(ctx context.Context, entries []*registry.Entry, timeLimit time.Duration) int {
	start := o.clock.Now()

	pending := make([]*registry.Entry, 0, len(entries))
	next := make([]*registry.Entry, 0, len(entries))
	for _, e := range entries {
		if o.Poll(e).Pending() {
			pending = append(pending, e)
		}
	}

	for len(pending) > 0 {
		if timeLimit > 0 && o.clock.Since(start) >= timeLimit {
			break
		}
		select {
		case <-ctx.Done():
			logger.Debug("等待落定被取消", "pending", len(pending))
			return len(pending)
		case <-o.clock.After(o.cfg.SettlePollInterval):
		}

		next = next[:0]
		for _, e := range pending {
			if o.Poll(e).Pending() {
				next = append(next, e)
			}
		}
		pending, next = next, pending
	}

	if len(pending) > 0 {
		logger.Info("等待落定超时", "pending", len(pending), "limit", timeLimit)
	}
	return len(pending)
}

// ============================================================================
//                              延迟记录
// ============================================================================

// recordLatency 记录延迟，最新在前
func (o *Orchestrator) recordLatency(id types.ResourceID, d time.Duration) {
	prev, _ := o.latencies.Get(id)
	n := len(prev) + 1
	if n > o.cfg.LatencySamples {
		n = o.cfg.LatencySamples
	}
	samples := make([]time.Duration, n)
	samples[0] = d
	copy(samples[1:], prev)
	o.latencies.Add(id, samples)
}

// Latencies 返回资源最近的传输延迟（最新在前）
func (o *Orchestrator) Latencies(id types.ResourceID) []time.Duration {
	samples, ok := o.latencies.Peek(id)
	if !ok {
		return nil
	}
	out := make([]time.Duration, len(samples))
	copy(out, samples)
	return out
}

func (o *Orchestrator) publish(evt types.Event) {
	if o.bus != nil {
		o.bus.Publish(evt)
	}
}

// clampLevel 把等级钳制到 [lo, hi]
func clampLevel(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
