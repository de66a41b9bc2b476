package view

import (
	"math"

	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/view")

// screenEpsilon 屏幕尺寸比较容差
const screenEpsilon = 1e-3

// slaveLocation 等待解析的从属位置
type slaveLocation struct {
	origin   types.Vector
	boost    float64
	override bool
	duration float64
}

// Aggregator 视点聚合器
type Aggregator struct {
	cfg Config

	lasting []types.ViewInfo
	pending []types.ViewInfo
	slaves  []slaveLocation
}

// New 创建视点聚合器
func New(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// ============================================================================
//                              提交
// ============================================================================

// SubmitView 提交视点
//
// duration <= 0 时移除该位置的持续视点，并作为本轮视点加入；
// duration > 0 时加入或刷新持续视点。
func (a *Aggregator) SubmitView(origin types.Vector, screenSize, fovScreenSize, boost float64, override bool, duration float64) {
	if boost <= 0 {
		boost = 1
	}
	v := types.ViewInfo{
		Origin:        origin,
		ScreenSize:    screenSize,
		FOVScreenSize: fovScreenSize,
		Boost:         boost,
		Override:      override,
		Duration:      duration,
	}

	if duration <= 0 {
		a.lasting = a.removeAt(a.lasting, origin)
		v.Duration = 0
		a.pending = a.merge(a.pending, v)
		return
	}
	a.lasting = a.merge(a.lasting, v)
}

// SubmitSlaveLocation 提交从属位置
func (a *Aggregator) SubmitSlaveLocation(origin types.Vector, boost float64, override bool, duration float64) {
	a.slaves = append(a.slaves, slaveLocation{
		origin:   origin,
		boost:    boost,
		override: override,
		duration: duration,
	})
}

// ============================================================================
//                              解析
// ============================================================================

// Resolve 解析本轮视点列表
//
// 每个调度轮次只调用一次。返回的切片归调用方所有。
func (a *Aggregator) Resolve(deltaTime float64) []types.ViewInfo {
	multiplePlayers := len(a.pending) > 1

	// 从属位置复用首个视点的屏幕参数
	screen, fov := a.cfg.DefaultScreenSize, a.cfg.DefaultFOVScreenSize
	if len(a.pending) > 0 {
		screen, fov = a.pending[0].ScreenSize, a.pending[0].FOVScreenSize
	} else if len(a.lasting) > 0 {
		screen, fov = a.lasting[0].ScreenSize, a.lasting[0].FOVScreenSize
	}
	for _, s := range a.slaves {
		a.SubmitView(s.origin, screen, fov, s.boost, s.override, s.duration)
	}
	a.slaves = a.slaves[:0]

	factor := 1.0
	if multiplePlayers {
		factor = a.cfg.SplitScreenFactor
	}
	useOverride := a.hasOverride()

	out := make([]types.ViewInfo, 0, len(a.lasting)+len(a.pending))
	for _, src := range [][]types.ViewInfo{a.lasting, a.pending} {
		for _, v := range src {
			if v.Override != useOverride {
				continue
			}
			v.ScreenSize *= factor
			out = a.merge(out, v)
		}
	}

	// 衰减持续视点
	kept := a.lasting[:0]
	for _, v := range a.lasting {
		v.Duration -= deltaTime
		if v.Duration > 0 {
			kept = append(kept, v)
		}
	}
	a.lasting = kept
	a.pending = a.pending[:0]

	if useOverride {
		logger.Debug("独占视点生效", "views", len(out))
	}
	return out
}

// Counts 返回持续视点与本轮视点数量
func (a *Aggregator) Counts() (lasting, pending int) {
	return len(a.lasting), len(a.pending)
}

// Reset 清除所有视点
func (a *Aggregator) Reset() {
	a.lasting = a.lasting[:0]
	a.pending = a.pending[:0]
	a.slaves = a.slaves[:0]
}

// ============================================================================
//                              内部方法
// ============================================================================

// hasOverride 是否存在独占视点
func (a *Aggregator) hasOverride() bool {
	for _, v := range a.lasting {
		if v.Override {
			return true
		}
	}
	for _, v := range a.pending {
		if v.Override {
			return true
		}
	}
	return false
}

// merge 合并视点：近似重复时更新持续时间和非默认放大系数，否则追加
func (a *Aggregator) merge(list []types.ViewInfo, v types.ViewInfo) []types.ViewInfo {
	found := false
	for i := range list {
		cur := &list[i]
		if !a.isDuplicate(*cur, v) {
			continue
		}
		cur.Duration = v.Duration
		if !nearlyEqual(v.Boost, 1) {
			cur.Boost = v.Boost
		}
		found = true
	}
	if found {
		return list
	}
	return append(list, v)
}

// removeAt 移除该位置附近的所有视点
func (a *Aggregator) removeAt(list []types.ViewInfo, origin types.Vector) []types.ViewInfo {
	kept := list[:0]
	for _, v := range list {
		if !v.Origin.Near(origin, a.cfg.DuplicateEpsilon) {
			kept = append(kept, v)
		}
	}
	return kept
}

// isDuplicate 判断两个视点是否近似重复
func (a *Aggregator) isDuplicate(x, y types.ViewInfo) bool {
	return x.Origin.Near(y.Origin, a.cfg.DuplicateEpsilon) &&
		nearlyEqual(x.ScreenSize, y.ScreenSize) &&
		nearlyEqual(x.FOVScreenSize, y.FOVScreenSize) &&
		x.Override == y.Override
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= screenEpsilon
}
