package budget

import (
	"time"
)

// Gates 增长闸门
type Gates struct {
	cfg Config

	// suspendLeft 剩余暂停轮数（含当前轮）
	suspendLeft int

	minRequest   bool
	levelChanged time.Time
}

// NewGates 创建增长闸门
func NewGates(cfg Config) *Gates {
	return &Gates{cfg: cfg}
}

// BeginPass 在分配前更新暂停计数，返回本轮是否暂停全部增长
//
// 可用内存低于 StopAllLimit 时，本轮及随后 SuspendPasses 轮暂停增长。
func (g *Gates) BeginPass(limited bool, availableNow int64) bool {
	if g.suspendLeft > 0 {
		g.suspendLeft--
	}
	if limited && availableNow < g.cfg.StopAllLimit {
		g.suspendLeft = g.cfg.SuspendPasses + 1
	}
	return g.suspendLeft > 0
}

// Suspended 当前是否暂停
func (g *Gates) Suspended() bool {
	return g.suspendLeft > 0
}

// StopGrowth 可用内存是否已低到只允许强制资源增长
func (g *Gates) StopGrowth(limited bool, availableNow int64) bool {
	return limited && availableNow <= g.cfg.StopGrowthLimit
}

// NotifyLevelChange 启用最小请求限制
func (g *Gates) NotifyLevelChange(now time.Time) {
	g.minRequest = true
	g.levelChanged = now
}

// MinRequestActive 最小请求限制是否生效
func (g *Gates) MinRequestActive() bool {
	return g.minRequest
}

// BlocksMinRequest 在最小请求限制下该期望等级是否被拦截
func (g *Gates) BlocksMinRequest(wanted int) bool {
	return g.minRequest && wanted < g.cfg.MinRequestLevels
}

// EndPass 在完整轮次结束时检查是否解除最小请求限制
//
// 超过 MinGuarantee 且没有进行中的增长，或超过 MaxGuarantee 时解除。
func (g *Gates) EndPass(now time.Time, growsInFlight int) bool {
	if !g.minRequest {
		return false
	}
	since := now.Sub(g.levelChanged)
	if (since > g.cfg.MinGuarantee && growsInFlight == 0) || since > g.cfg.MaxGuarantee {
		g.minRequest = false
		logger.Info("最小请求限制已解除", "since", since, "growsInFlight", growsInFlight)
		return true
	}
	return false
}
