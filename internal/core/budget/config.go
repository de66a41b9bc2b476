package budget

import (
	"time"

	"github.com/dep2p/go-lodstream/config"
)

// Config 预算分配配置
type Config struct {
	MemoryMargin      int64
	HysteresisLimit   int64
	DropLevelsLimit   int64
	StopGrowthLimit   int64
	StopAllLimit      int64
	MinEvict          int64
	MaxTempMemory     int64
	SuspendPasses     int
	MinRequestLevels  int
	MinGuarantee      time.Duration
	MaxGuarantee      time.Duration
	MinFudgeFactor    float64
	FudgeIncreaseRate float64
	FudgeDecreaseRate float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建预算配置
func ConfigFromUnified(cfg *config.Config) Config {
	b := config.DefaultBudgetConfig()
	if cfg != nil {
		b = cfg.Budget
	}
	return Config{
		MemoryMargin:      b.MemoryMarginBytes,
		HysteresisLimit:   b.HysteresisLimitBytes,
		DropLevelsLimit:   b.DropLevelsLimitBytes,
		StopGrowthLimit:   b.StopGrowthLimitBytes,
		StopAllLimit:      b.StopAllLimitBytes,
		MinEvict:          b.MinEvictBytes,
		MaxTempMemory:     b.MaxTempBytes(),
		SuspendPasses:     b.SuspendPasses,
		MinRequestLevels:  b.MinRequestLevels,
		MinGuarantee:      b.MinRequestGuarantee.Duration(),
		MaxGuarantee:      b.MaxRequestGuarantee.Duration(),
		MinFudgeFactor:    b.MinFudgeFactor,
		FudgeIncreaseRate: b.FudgeIncreaseRate,
		FudgeDecreaseRate: b.FudgeDecreaseRate,
	}
}
