package heuristic

import (
	"math"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// Strategy 单个等级估计启发式
type Strategy interface {
	// Kind 启发式类型
	Kind() types.HeuristicKind

	// Fallback 是否属于回退链
	Fallback() bool

	// Estimate 估计期望等级
	Estimate(in *Input, env *Env) Estimate
}

// ============================================================================
//                              Forced
// ============================================================================

// Forced 强制常驻启发式
type Forced struct{}

// Kind 实现 Strategy
func (Forced) Kind() types.HeuristicKind { return types.HeuristicForced }

// Fallback 实现 Strategy
func (Forced) Fallback() bool { return false }

// Estimate 实现 Strategy
func (Forced) Estimate(in *Input, env *Env) Estimate {
	if !in.Forced(env.Now) {
		return Estimate{}
	}
	return Estimate{Level: in.MaxAllowed, Distance: math.MaxFloat64, Applies: true}
}

// ============================================================================
//                              Static / Dynamic
// ============================================================================

// Static 静态放置启发式
type Static struct {
	cfg *Config
}

// Kind 实现 Strategy
func (Static) Kind() types.HeuristicKind { return types.HeuristicStatic }

// Fallback 实现 Strategy
func (Static) Fallback() bool { return false }

// Estimate 实现 Strategy
func (s Static) Estimate(in *Input, env *Env) Estimate {
	instances := env.Placements.Static(in.ID)
	if len(instances) == 0 || len(env.Views) == 0 {
		return Estimate{}
	}
	spheres := make([]weighted, len(instances))
	for i, inst := range instances {
		spheres[i] = weighted{bounds: inst.Bounds, texelFactor: inst.TexelFactor}
	}
	return s.cfg.estimateSpheres(in, env.Views, spheres, env.Fudge)
}

// Dynamic 动态放置启发式
//
// 动态对象不使用距离回退系数。
type Dynamic struct {
	cfg *Config
}

// Kind 实现 Strategy
func (Dynamic) Kind() types.HeuristicKind { return types.HeuristicDynamic }

// Fallback 实现 Strategy
func (Dynamic) Fallback() bool { return false }

// Estimate 实现 Strategy
func (d Dynamic) Estimate(in *Input, env *Env) Estimate {
	if !d.cfg.EnableDynamic {
		return Estimate{}
	}
	instances := env.Placements.Dynamic(in.ID)
	if len(instances) == 0 || len(env.Views) == 0 {
		return Estimate{}
	}
	spheres := make([]weighted, 0, len(instances))
	for _, inst := range instances {
		if inst.Bounds.Radius <= 0 {
			continue
		}
		spheres = append(spheres, weighted{bounds: inst.Bounds, texelFactor: inst.TexelFactor})
	}
	if len(spheres) == 0 {
		return Estimate{}
	}
	return d.cfg.estimateSpheres(in, env.Views, spheres, 1)
}

type weighted struct {
	bounds      types.Sphere
	texelFactor float64
}

// estimateSpheres 对所有视点与包围球取最大等级和最小距离
func (c *Config) estimateSpheres(in *Input, views []types.ViewInfo, spheres []weighted, fudge float64) Estimate {
	classFactor := c.Classes.Limit(in.Class).ScreenSizeFactor
	if classFactor <= 0 {
		classFactor = 1
	}
	boost := in.Boost
	if boost <= 0 {
		boost = 1
	}
	fudgeSq := fudge * fudge

	minDistSq := math.MaxFloat64
	level := 0
	for _, v := range views {
		screen := v.ScreenSize * v.Boost * boost * classFactor
		for _, s := range spheres {
			distSq := v.Origin.DistSquared(s.bounds.Center) * fudgeSq
			d := distSq - s.bounds.Radius*s.bounds.Radius
			if d < c.MinDistanceSq {
				d = c.MinDistanceSq
			}

			// 位于包围球内
			if d <= 1 {
				return Estimate{Level: in.MaxAllowed, Distance: 1, Applies: true}
			}

			texels := s.texelFactor / math.Sqrt(d) * screen
			if l := TexelsToLevel(texels * c.GlobalBias); l > level {
				level = l
			}
			if d < minDistSq {
				minDistSq = d
			}
			if level >= in.MaxAllowed {
				return Estimate{Level: level, Distance: math.Sqrt(minDistSq), Applies: true}
			}
		}
	}
	return Estimate{Level: level, Distance: math.Sqrt(minDistSq), Applies: true}
}

// ============================================================================
//                              Orphaned
// ============================================================================

// Orphaned 孤立资源衰减启发式
type Orphaned struct {
	cfg *Config
}

// Kind 实现 Strategy
func (Orphaned) Kind() types.HeuristicKind { return types.HeuristicOrphaned }

// Fallback 实现 Strategy
func (Orphaned) Fallback() bool { return true }

// Estimate 实现 Strategy
func (o Orphaned) Estimate(in *Input, env *Env) Estimate {
	if in.OrphanedAt.IsZero() || env.Placements.HasStatic(in.ID) {
		return Estimate{}
	}
	sinceOrphaned := env.Now.Sub(in.OrphanedAt)
	if sinceOrphaned >= o.cfg.OrphanGrace {
		return Estimate{}
	}
	// 孤立后又被绘制过的资源交给 LastUsed
	sinceUsed := env.Now.Sub(in.LastUsed)
	if sinceUsed-sinceOrphaned <= -o.cfg.OrphanRenderMargin {
		return Estimate{}
	}
	return Estimate{Level: in.Resident - 1, Distance: math.MaxFloat64, Applies: true}
}

// ============================================================================
//                              LastUsed
// ============================================================================

// LastUsed 最后使用时间启发式，总是适用
type LastUsed struct {
	cfg *Config
}

// Kind 实现 Strategy
func (LastUsed) Kind() types.HeuristicKind { return types.HeuristicLastUsed }

// Fallback 实现 Strategy
func (LastUsed) Fallback() bool { return true }

// Estimate 实现 Strategy
func (l LastUsed) Estimate(in *Input, env *Env) Estimate {
	since := env.Now.Sub(in.LastUsed)
	level := 0
	switch {
	case since < l.cfg.LastUsedFullWindow:
		level = in.MaxAllowed
	case since < l.cfg.LastUsedReducedWindow:
		level = in.MaxAllowed - 1
	}
	return Estimate{Level: level, Distance: math.MaxFloat64, Applies: true}
}
