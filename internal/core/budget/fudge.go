package budget

import "math"

// maxFudgeFactor 修正系数上限
const maxFudgeFactor = 10.0

// maxFudgeStep 单次更新使用的最大时间步长（秒）
const maxFudgeStep = 0.1

// Fudge 距离修正系数控制器
//
// 可用内存不超过 DropLevelsLimit 时系数增大（资源看起来更远），
// 高于 HysteresisLimit 时回落，介于两者之间保持不变。
type Fudge struct {
	cfg   Config
	value float64
	rate  float64
}

// NewFudge 创建修正系数控制器
func NewFudge(cfg Config) *Fudge {
	f := &Fudge{cfg: cfg}
	f.value = f.clamp(1)
	return f
}

// Value 当前修正系数
func (f *Fudge) Value() float64 {
	return f.value
}

// Rate 当前变化率（每秒）
func (f *Fudge) Rate() float64 {
	return f.rate
}

// Reset 恢复为 1
func (f *Fudge) Reset() {
	f.value = f.clamp(1)
	f.rate = 0
}

// Update 根据可用内存更新变化率并推进修正系数
func (f *Fudge) Update(availableNow int64, deltaTime float64) float64 {
	switch {
	case availableNow <= f.cfg.DropLevelsLimit:
		f.rate = f.cfg.FudgeIncreaseRate
	case availableNow > f.cfg.HysteresisLimit:
		f.rate = -f.cfg.FudgeDecreaseRate
		// 低于 1 的区间线性化
		if f.value < 1+f.cfg.FudgeDecreaseRate {
			f.rate *= f.cfg.MinFudgeFactor
		}
	default:
		f.rate = 0
	}
	return f.Advance(deltaTime)
}

// Advance 按当前变化率推进修正系数
func (f *Fudge) Advance(deltaTime float64) float64 {
	step := math.Min(maxFudgeStep, math.Max(deltaTime, 0))
	f.value = f.clamp(f.value + f.rate*step)
	return f.value
}

func (f *Fudge) clamp(v float64) float64 {
	lo := f.cfg.MinFudgeFactor
	if lo <= 0 {
		lo = 1
	}
	return math.Max(lo, math.Min(maxFudgeFactor, v))
}
