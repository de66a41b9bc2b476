package budget

import (
	"time"

	"github.com/dep2p/go-lodstream/internal/core/registry"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/budget")

// Issuer 发起与取消等级变更
//
// 由 orchestrator.Orchestrator 实现。
type Issuer interface {
	// Request 发起等级变更，返回是否已发起（增长可能因节流被推迟）
	Request(e *registry.Entry, target int, prioritizeIO bool) bool

	// Cancel 取消进行中的传输，返回是否成功
	Cancel(e *registry.Entry) bool
}

// Plan 一次分配的输入
type Plan struct {
	// Candidates 按优先级降序
	Candidates []*registry.Entry

	// Pool 池内存状态，Supported 为 false 时使用无限池模式
	Pool types.PoolMemory

	Now time.Time

	// Exhaustive 穷尽模式不受最小请求限制
	Exhaustive bool
}

// Outcome 一次分配的结果
type Outcome struct {
	AvailableNow   int64
	AvailableLater int64
	Temp           int64

	Issued    int
	Cancelled int
	Deferred  int
	Shrinks   int

	Suspended  bool
	StopGrowth bool
}

// Allocator 预算分配器
type Allocator struct {
	cfg     Config
	tracker *Tracker
	gates   *Gates
	fudge   *Fudge
}

// NewAllocator 创建预算分配器
func NewAllocator(cfg Config, tracker *Tracker) *Allocator {
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Allocator{
		cfg:     cfg,
		tracker: tracker,
		gates:   NewGates(cfg),
		fudge:   NewFudge(cfg),
	}
}

// Tracker 返回记账器
func (a *Allocator) Tracker() *Tracker { return a.tracker }

// Gates 返回增长闸门
func (a *Allocator) Gates() *Gates { return a.gates }

// Fudge 返回修正系数控制器
func (a *Allocator) Fudge() *Fudge { return a.fudge }

// Config 返回配置
func (a *Allocator) Config() Config { return a.cfg }

// Available 返回当前与落定后的可用字节；无限池返回最大值
func (a *Allocator) Available(pool types.PoolMemory) (now, later int64) {
	if !pool.Supported {
		return maxBytes, maxBytes
	}
	return a.tracker.AvailableNow(pool, a.cfg.MemoryMargin), a.tracker.AvailableLater(pool, a.cfg.MemoryMargin)
}

const maxBytes = int64(^uint64(0) >> 1)

// ============================================================================
//                              分配
// ============================================================================

// Allocate 执行一次分配
func (a *Allocator) Allocate(plan Plan, issuer Issuer) Outcome {
	limited := plan.Pool.Supported
	r := &run{
		a:       a,
		plan:    plan,
		issuer:  issuer,
		temp:    a.tracker.Temp(),
		maxTemp: a.cfg.MaxTempMemory,
		planned: make(map[*registry.Entry]int),
	}
	r.now, r.later = a.Available(plan.Pool)

	r.out.Suspended = a.gates.BeginPass(limited, r.now)
	r.out.StopGrowth = a.gates.StopGrowth(limited, r.now)
	if r.out.Suspended {
		logger.Debug("增长已暂停", "availableNow", r.now, "passes", a.gates.suspendLeft)
	}

	if limited {
		r.limited()
	} else {
		r.unlimited()
	}

	r.out.AvailableNow = r.now
	r.out.AvailableLater = r.later
	r.out.Temp = r.temp
	return r.out
}

// run 单次分配的工作状态
type run struct {
	a      *Allocator
	plan   Plan
	issuer Issuer

	now     int64
	later   int64
	temp    int64
	maxTemp int64

	// planned 本轮计划收缩到的等级，循环结束后统一发起
	planned map[*registry.Entry]int
	order   []*registry.Entry

	out Outcome
}

// growthAllowed 该资源本轮是否允许增长
func (r *run) growthAllowed(e *registry.Entry) bool {
	if r.out.Suspended {
		return false
	}
	if r.out.StopGrowth && !e.Forced(r.plan.Now) {
		return false
	}
	if !r.plan.Exhaustive && r.a.gates.BlocksMinRequest(e.Wanted) {
		return false
	}
	return true
}

// limited 有限池模式
func (r *run) limited() {
	c := r.plan.Candidates
	high, low := 0, len(c)-1
	lowUnwanted := low

	for high <= low && r.temp < r.maxTemp {
		e := c[high]
		if !e.Removed() {
			// 进行中的收缩已低于期望等级，可负担时取消
			if e.InFlight && e.Requested < e.Resident && e.Requested < e.Wanted {
				stream := e.Size(e.Resident) - e.Size(e.Requested)
				if stream <= r.later && r.issuer.Cancel(e) {
					r.later -= stream
					r.out.Cancelled++
				}
			}

			if !e.InFlight && e.Ready && e.Wanted > e.Resident && r.growthAllowed(e) {
				tempSize := e.Size(e.Resident)
				target := e.Size(e.Wanted)
				r.later -= target - tempSize

				if target <= r.now && r.temp < r.maxTemp {
					if r.issuer.Request(e, e.Wanted, e.Forced(r.plan.Now)) {
						r.now -= target
						r.temp += tempSize
						r.out.Issued++
					} else {
						r.out.Deferred++
					}
				}
			}
		}

		if r.later < 0 {
			lowUnwanted = r.streamOut(false, lowUnwanted, 0, &low)
		}
		if r.later < 0 {
			tried := r.streamOut(true, low, high, &low)
			if lowUnwanted > tried {
				lowUnwanted = tried
			}
		}
		high++
	}

	for _, e := range r.order {
		target := r.planned[e]
		if e.Removed() || e.InFlight || target >= e.Resident {
			continue
		}
		if r.issuer.Request(e, target, false) {
			r.out.Shrinks++
			r.out.Issued++
		}
	}

	if r.out.Shrinks > 0 || r.out.Cancelled > 0 {
		logger.Debug("预算收缩",
			"shrinks", r.out.Shrinks,
			"cancelled", r.out.Cancelled,
			"availableLater", r.later,
			"temp", r.temp)
	}
}

// current 计划等级，未计划时为常驻等级
func (r *run) current(e *registry.Entry) int {
	if l, ok := r.planned[e]; ok {
		return l
	}
	return e.Resident
}

// streamOut 从 start 向 stop（不含）收缩资源，返回最后检查的位置
//
// allLevels 为 false 时只收缩到期望等级，为 true 时收缩到最小等级。
// 仅当从 low 开始时，无法再收缩的最低优先级资源会让 low 上移。
func (r *run) streamOut(allLevels bool, start, stop int, low *int) int {
	c := r.plan.Candidates
	bump := start == *low

	i := start
	for ; r.later < 0 && i > stop && r.temp < r.maxTemp; i-- {
		e := c[i]
		if !e.Removed() && e.Ready {
			if e.InFlight {
				// 取消不再需要的增长
				load := e.Requested > e.Resident
				if load && (allLevels || e.Requested > e.Wanted) {
					stream := e.Size(e.Requested) - e.Size(e.Resident)
					if r.issuer.Cancel(e) {
						r.later += stream
						r.out.Cancelled++
					}
				}
			} else {
				target := e.Wanted
				if allLevels {
					target = e.MinAllowed
				}
				cur := r.current(e)
				if target < cur {
					curSize := e.Size(cur)
					r.later += curSize - e.Size(target)
					r.temp += curSize
					if _, ok := r.planned[e]; !ok {
						r.order = append(r.order, e)
					}
					r.planned[e] = target
				}
				if r.current(e) > e.MinAllowed {
					bump = false
				}
			}
		}
		if bump {
			*low--
		}
	}
	return i
}

// unlimited 无限池模式
func (r *run) unlimited() {
	for _, e := range r.plan.Candidates {
		if r.temp >= r.maxTemp {
			break
		}
		if e.Removed() {
			continue
		}
		switch {
		case e.InFlight && e.Requested > e.Resident && e.Requested > e.Wanted,
			e.InFlight && e.Requested < e.Resident && e.Requested < e.Wanted:
			if r.issuer.Cancel(e) {
				r.out.Cancelled++
			}

		case !e.InFlight && e.Ready && e.Resident != e.Wanted:
			grow := e.Wanted > e.Resident
			if grow && !r.growthAllowed(e) {
				continue
			}
			if r.issuer.Request(e, e.Wanted, grow && e.Forced(r.plan.Now)) {
				r.temp += e.Size(e.Resident)
				r.out.Issued++
				if !grow {
					r.out.Shrinks++
				}
			} else if grow {
				r.out.Deferred++
			}
		}
	}
}
