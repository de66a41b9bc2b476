package heuristic

import (
	"math"

	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/heuristic")

// Engine 启发式引擎
type Engine struct {
	cfg       Config
	primaries []Strategy
	fallbacks []Strategy
}

// NewEngine 创建启发式引擎
//
// 主启发式按 Forced、Dynamic、Static 排列，同级时靠前者胜出。
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	c := &e.cfg
	e.primaries = []Strategy{Forced{}, Dynamic{cfg: c}, Static{cfg: c}}
	e.fallbacks = []Strategy{Orphaned{cfg: c}, LastUsed{cfg: c}}
	logger.Debug("启发式引擎已创建", "globalBias", cfg.GlobalBias, "dynamic", cfg.EnableDynamic)
	return e
}

// Config 返回引擎配置
func (e *Engine) Config() Config {
	return e.cfg
}

// Strategies 返回所有启发式（主启发式在前）
func (e *Engine) Strategies() []Strategy {
	out := make([]Strategy, 0, len(e.primaries)+len(e.fallbacks))
	out = append(out, e.primaries...)
	return append(out, e.fallbacks...)
}

// Evaluate 评估单个资源
//
// in 以值传递，引擎在本地副本上填充 MinAllowed / MaxAllowed。
func (e *Engine) Evaluate(in Input, env *Env) Decision {
	min, max := e.Limits(&in)
	in.MinAllowed, in.MaxAllowed = min, max

	d := Decision{
		MinAllowed: min,
		MaxAllowed: max,
		Heuristic:  types.HeuristicNone,
		Distance:   e.cfg.MaxDistance,
	}
	if d.Distance <= 0 {
		d.Distance = math.MaxFloat64
	}

	// 可流式范围为空时无需估计
	if min == max {
		d.Wanted = max
		if in.Forced(env.Now) {
			d.Heuristic = types.HeuristicForced
		}
		return d
	}

	wanted, kind, applied := 0, types.HeuristicNone, false
	for _, s := range e.primaries {
		est := s.Estimate(&in, env)
		if !est.Applies {
			continue
		}
		if !applied || est.Level > wanted {
			wanted, kind = est.Level, s.Kind()
		}
		applied = true
		if est.Distance < d.Distance {
			d.Distance = est.Distance
		}
	}

	if !applied {
		for _, s := range e.fallbacks {
			est := s.Estimate(&in, env)
			if est.Applies {
				wanted, kind = est.Level, s.Kind()
				break
			}
		}
	}

	d.Wanted = clamp(wanted, min, max)
	d.Heuristic = kind
	return d
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
