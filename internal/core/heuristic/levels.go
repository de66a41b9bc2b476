package heuristic

import (
	"math"
	"math/bits"
)

// TexelsToLevel 把屏幕纹素数换算为等级数
//
// level = 1 + ceilLog2(trunc(texels))
func TexelsToLevel(texels float64) int {
	if !(texels > 1) {
		return 1
	}
	if texels >= math.MaxInt64 {
		return 64
	}
	return 1 + ceilLog2(uint64(texels))
}

func ceilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

// Limits 计算资源的最小与最大允许等级
func (e *Engine) Limits(in *Input) (min, max int) {
	count := in.LevelCount
	bias := e.cfg.LevelBias

	min = count - bias
	if e.cfg.MinResidentLevels < min {
		min = e.cfg.MinResidentLevels
	}
	if min < 1 {
		min = 1
	}

	max = count - bias
	if e.cfg.MaxLevelCount > 0 && max > e.cfg.MaxLevelCount {
		max = e.cfg.MaxLevelCount
	}
	limit := e.cfg.Classes.Limit(in.Class)
	if limit.MaxLevels > 0 && max > limit.MaxLevels {
		max = limit.MaxLevels
	}
	if max < min {
		max = min
	}

	// 不可流式的等级始终常驻
	if limit.StreamedLevels > 0 {
		floor := count - limit.StreamedLevels
		if floor > max {
			floor = max
		}
		if floor > min {
			min = floor
		}
	}
	return min, max
}
