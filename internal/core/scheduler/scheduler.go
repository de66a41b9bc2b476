package scheduler

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-lodstream/internal/core/heuristic"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
)

var logger = log.Logger("core/scheduler")

// minChunk 每个 goroutine 至少处理的资源数
const minChunk = 64

// Scheduler 优先级调度器
type Scheduler struct {
	cfg    Config
	engine *heuristic.Engine
}

// New 创建调度器
func New(cfg Config) *Scheduler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Scheduler{
		cfg:    cfg,
		engine: heuristic.NewEngine(cfg.Heuristic),
	}
}

// Engine 返回启发式引擎
func (s *Scheduler) Engine() *heuristic.Engine {
	return s.engine
}

// ============================================================================
//                              同步执行
// ============================================================================

// Run 同步执行调度
func (s *Scheduler) Run(ctx context.Context, job *Job) (*Result, error) {
	if job == nil {
		return nil, ErrNilJob
	}
	n := len(job.Inputs)
	res := &Result{
		Pass:   job.Pass,
		Advice: make([]Advice, n),
	}

	workers := s.cfg.Workers
	if limit := (n + minChunk - 1) / minChunk; workers > limit {
		workers = limit
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	partial := make([]Aggregate, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		w := w
		g.Go(func() error {
			return s.evaluate(gctx, job, res.Advice[lo:hi], job.Inputs[lo:hi], &partial[w])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range partial {
		res.Stats.merge(&partial[i])
	}

	res.Candidates = make([]int, 0, n)
	for i := range res.Advice {
		a := &res.Advice[i]
		if a.Excluded {
			continue
		}
		resident := job.Inputs[i].Resident
		if a.Wanted > resident || resident > a.MinAllowed {
			res.Candidates = append(res.Candidates, i)
		}
	}
	sort.Slice(res.Candidates, func(x, y int) bool {
		a, b := &res.Advice[res.Candidates[x]], &res.Advice[res.Candidates[y]]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Index < b.Index
	})

	logger.Debug("调度完成",
		"pass", job.Pass,
		"inputs", n,
		"candidates", len(res.Candidates),
		"wanting", res.Stats.Wanting,
		"workers", workers)
	return res, nil
}

// evaluate 评估一个区间，只写 out 与 agg
func (s *Scheduler) evaluate(ctx context.Context, job *Job, out []Advice, inputs []heuristic.Input, agg *Aggregate) error {
	env := &job.Env
	for i := range inputs {
		if i%minChunk == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		in := &inputs[i]
		a := &out[i]
		a.Index = in.Index
		a.ID = in.ID

		resident := in.Size(in.Resident)
		agg.ResidentBytes += resident

		if in.InFlight {
			agg.InFlight++
			agg.TempBytes += resident
			requested := in.Size(in.Requested)
			if requested > resident {
				agg.PendingInBytes += requested - resident
			} else {
				agg.PendingOutBytes += resident - requested
			}
		}

		if job.DisregardWorld && !s.cfg.Classes.IsPriority(in.Class) {
			a.Excluded = true
			a.Wanted = in.Resident
			a.MinAllowed, a.MaxAllowed = 1, in.LevelCount
			a.Distance = s.cfg.MaxDistance
			agg.Excluded++
			agg.WantedBytes += resident
			continue
		}

		d := s.engine.Evaluate(*in, env)
		a.MinAllowed = d.MinAllowed
		a.MaxAllowed = d.MaxAllowed
		a.Wanted = d.Wanted
		a.Heuristic = d.Heuristic
		a.Distance = d.Distance
		a.Priority = s.cfg.Priority(d.Wanted, d.Distance, env.Now.Sub(in.LastUsed), in.Forced(env.Now))

		wanted := in.Size(d.Wanted)
		agg.WantedBytes += wanted
		agg.HeuristicBytes[d.Heuristic] += wanted
		switch {
		case d.Wanted > in.Resident:
			agg.Wanting++
			if !in.InFlight {
				agg.WantedInBytes += wanted - resident
			}
		case d.Wanted < in.Resident && !in.InFlight:
			agg.WantedOutBytes += resident - wanted
		}
	}
	return nil
}

// ============================================================================
//                              异步执行
// ============================================================================

// Pending 后台运行中的调度
type Pending struct {
	done   chan struct{}
	res    *Result
	err    error
	cancel context.CancelFunc
}

// Start 在后台执行调度
func (s *Scheduler) Start(ctx context.Context, job *Job) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pending{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(p.done)
		defer cancel()
		p.res, p.err = s.Run(ctx, job)
	}()
	return p
}

// Wait 等待结果
func (p *Pending) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-p.done:
		return p.res, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done 是否已完成
func (p *Pending) Done() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Cancel 取消后台调度并等待其退出
func (p *Pending) Cancel() {
	p.cancel()
	<-p.done
}
