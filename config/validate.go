package config

import (
	"errors"
	"fmt"
)

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrNilConfig 配置为空
	ErrNilConfig = errors.New("config is nil")

	// ErrUnknownPreset 未知预设
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrUnknownFormat 无法识别的配置文件格式
	ErrUnknownFormat = errors.New("unknown config file format")
)

// ValidateAll 验证整个配置的有效性
func ValidateAll(c *Config) error {
	if c == nil {
		return ErrNilConfig
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 回落阈值低于增大阈值 -> 交换
//   - 全部暂停阈值高于停止增长阈值 -> 交换
//   - 最小保证时间大于最大保证时间 -> 交换
//   - 并行数、采集帧数小于 1 -> 置 1
//   - 全局乘数不为正 -> 默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	b := &c.Budget
	if b.HysteresisLimitBytes < b.DropLevelsLimitBytes {
		b.HysteresisLimitBytes, b.DropLevelsLimitBytes = b.DropLevelsLimitBytes, b.HysteresisLimitBytes
	}
	if b.StopAllLimitBytes > b.StopGrowthLimitBytes {
		b.StopAllLimitBytes, b.StopGrowthLimitBytes = b.StopGrowthLimitBytes, b.StopAllLimitBytes
	}
	if b.MinRequestGuarantee > b.MaxRequestGuarantee {
		b.MinRequestGuarantee, b.MaxRequestGuarantee = b.MaxRequestGuarantee, b.MinRequestGuarantee
	}

	if c.Throttle.Workers < 1 {
		c.Throttle.Workers = 1
	}
	if c.Throttle.CollectStages < 1 {
		c.Throttle.CollectStages = 1
	}
	if c.Heuristics.GlobalBias <= 0 {
		c.Heuristics.GlobalBias = DefaultHeuristicsConfig().GlobalBias
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(err)
	}
}
