package config

import (
	"errors"
	"time"
)

// BudgetConfig 内存预算配置
//
// 所有阈值都以"当前可用字节"（池空闲减去安全余量）为基准：
//   - 低于 DropLevelsLimitBytes 时距离修正系数增大（整体降级）
//   - 高于 HysteresisLimitBytes 时修正系数回落
//   - 低于等于 StopGrowthLimitBytes 时非强制资源停止增长
//   - 低于 StopAllLimitBytes 时所有增长暂停 SuspendPasses 轮
type BudgetConfig struct {
	// MemoryMarginBytes 安全余量
	MemoryMarginBytes int64 `json:"memory_margin_bytes" yaml:"memory_margin_bytes" env:"MEMORY_MARGIN_BYTES"`

	// HysteresisLimitBytes 修正系数回落阈值
	HysteresisLimitBytes int64 `json:"hysteresis_limit_bytes" yaml:"hysteresis_limit_bytes" env:"HYSTERESIS_LIMIT_BYTES"`

	// DropLevelsLimitBytes 修正系数增大阈值
	DropLevelsLimitBytes int64 `json:"drop_levels_limit_bytes" yaml:"drop_levels_limit_bytes" env:"DROP_LEVELS_LIMIT_BYTES"`

	// StopGrowthLimitBytes 停止增长阈值
	StopGrowthLimitBytes int64 `json:"stop_growth_limit_bytes" yaml:"stop_growth_limit_bytes" env:"STOP_GROWTH_LIMIT_BYTES"`

	// StopAllLimitBytes 全部暂停阈值
	StopAllLimitBytes int64 `json:"stop_all_limit_bytes" yaml:"stop_all_limit_bytes" env:"STOP_ALL_LIMIT_BYTES"`

	// MinEvictBytes 紧急驱逐的最小字节数
	MinEvictBytes int64 `json:"min_evict_bytes" yaml:"min_evict_bytes" env:"MIN_EVICT_BYTES"`

	// MaxTempMemoryBytes 传输临时内存上限
	// 0 表示使用 MemoryMarginBytes / 2
	MaxTempMemoryBytes int64 `json:"max_temp_memory_bytes" yaml:"max_temp_memory_bytes" env:"MAX_TEMP_MEMORY_BYTES"`

	// SuspendPasses 低于 StopAllLimitBytes 后暂停增长的轮数
	SuspendPasses int `json:"suspend_passes" yaml:"suspend_passes" env:"SUSPEND_PASSES"`

	// MinRequestLevels 关卡切换后只考虑 wanted 不低于该值的增长请求
	MinRequestLevels int `json:"min_request_levels" yaml:"min_request_levels" env:"MIN_REQUEST_LEVELS"`

	// MinRequestGuarantee 最小请求限制至少保持的时间
	MinRequestGuarantee Duration `json:"min_request_guarantee" yaml:"min_request_guarantee" env:"MIN_REQUEST_GUARANTEE"`

	// MaxRequestGuarantee 最小请求限制最多保持的时间
	MaxRequestGuarantee Duration `json:"max_request_guarantee" yaml:"max_request_guarantee" env:"MAX_REQUEST_GUARANTEE"`

	// MinFudgeFactor 距离修正系数下限（钳制到 [0.1, 10]）
	MinFudgeFactor float64 `json:"min_fudge_factor" yaml:"min_fudge_factor" env:"MIN_FUDGE_FACTOR"`

	// FudgeIncreaseRate 内存紧张时修正系数每秒增量
	FudgeIncreaseRate float64 `json:"fudge_increase_rate" yaml:"fudge_increase_rate" env:"FUDGE_INCREASE_RATE"`

	// FudgeDecreaseRate 内存宽松时修正系数每秒减量
	FudgeDecreaseRate float64 `json:"fudge_decrease_rate" yaml:"fudge_decrease_rate" env:"FUDGE_DECREASE_RATE"`
}

// DefaultBudgetConfig 返回默认预算配置
func DefaultBudgetConfig() BudgetConfig {
	return BudgetConfig{
		// ════════════════════════════════════════════════════════════════════
		// 预算阈值（字节）
		// ════════════════════════════════════════════════════════════════════
		MemoryMarginBytes:    20 << 20, // 安全余量：20 MiB
		HysteresisLimitBytes: 20 << 20, // 修正系数回落：可用超过 20 MiB
		DropLevelsLimitBytes: 10 << 20, // 修正系数增大：可用不足 10 MiB
		StopGrowthLimitBytes: 12 << 20, // 停止增长：可用不足 12 MiB
		StopAllLimitBytes:    5 << 20,  // 全部暂停：可用不足 5 MiB
		MinEvictBytes:        10 << 20, // 紧急驱逐至少 10 MiB
		MaxTempMemoryBytes:   0,        // 0 表示余量的一半
		SuspendPasses:        2,        // 暂停 2 轮

		// ════════════════════════════════════════════════════════════════════
		// 关卡切换期间的最小请求限制
		// ════════════════════════════════════════════════════════════════════
		MinRequestLevels:    4,
		MinRequestGuarantee: Duration(2 * time.Second),  // 至少保持 2 秒
		MaxRequestGuarantee: Duration(12 * time.Second), // 最多保持 12 秒

		// ════════════════════════════════════════════════════════════════════
		// 距离修正系数
		// ════════════════════════════════════════════════════════════════════
		MinFudgeFactor:    1.0,
		FudgeIncreaseRate: 0.5,
		FudgeDecreaseRate: 0.5,
	}
}

// MaxTempBytes 返回生效的临时内存上限
func (c BudgetConfig) MaxTempBytes() int64 {
	if c.MaxTempMemoryBytes > 0 {
		return c.MaxTempMemoryBytes
	}
	return c.MemoryMarginBytes / 2
}

// Validate 验证预算配置
func (c BudgetConfig) Validate() error {
	if c.MemoryMarginBytes < 0 {
		return errors.New("memory margin must be non-negative")
	}
	if c.HysteresisLimitBytes < c.DropLevelsLimitBytes {
		return errors.New("hysteresis limit must not be below drop levels limit")
	}
	if c.StopAllLimitBytes > c.StopGrowthLimitBytes {
		return errors.New("stop all limit must not exceed stop growth limit")
	}
	if c.MinEvictBytes < 0 || c.MaxTempMemoryBytes < 0 {
		return errors.New("byte limits must be non-negative")
	}
	if c.SuspendPasses < 0 {
		return errors.New("suspend passes must be non-negative")
	}
	if c.MinRequestLevels < 0 {
		return errors.New("min request levels must be non-negative")
	}
	if c.MinRequestGuarantee > c.MaxRequestGuarantee {
		return errors.New("min request guarantee must not exceed max request guarantee")
	}
	if c.MinFudgeFactor < 0.1 || c.MinFudgeFactor > 10 {
		return errors.New("min fudge factor must be in [0.1, 10]")
	}
	if c.FudgeIncreaseRate < 0 || c.FudgeDecreaseRate < 0 {
		return errors.New("fudge rates must be non-negative")
	}
	return nil
}

// WithMemoryMargin 设置安全余量
func (c BudgetConfig) WithMemoryMargin(bytes int64) BudgetConfig {
	c.MemoryMarginBytes = bytes
	return c
}

// WithMaxTempMemory 设置临时内存上限
func (c BudgetConfig) WithMaxTempMemory(bytes int64) BudgetConfig {
	c.MaxTempMemoryBytes = bytes
	return c
}

// WithLimits 设置四个预算阈值
func (c BudgetConfig) WithLimits(hysteresis, dropLevels, stopGrowth, stopAll int64) BudgetConfig {
	c.HysteresisLimitBytes = hysteresis
	c.DropLevelsLimitBytes = dropLevels
	c.StopGrowthLimitBytes = stopGrowth
	c.StopAllLimitBytes = stopAll
	return c
}
