package config

import (
	"fmt"
	"time"
)

// 预设名称
const (
	PresetLowMemory  = "low-memory"
	PresetDefault    = "default"
	PresetHighMemory = "high-memory"
)

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "low-memory": 小池（移动端、掌机），更紧的阈值和节流
//   - "default": 默认配置
//   - "high-memory": 大池（桌面、工作站），更宽松的阈值
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return ErrNilConfig
	}

	switch presetName {
	case PresetLowMemory:
		applyLowMemoryPreset(cfg)
	case PresetHighMemory:
		applyHighMemoryPreset(cfg)
	case PresetDefault, "":
		// 使用默认配置
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPreset, presetName)
	}
	return nil
}

// applyLowMemoryPreset 应用小池预设
func applyLowMemoryPreset(cfg *Config) {
	cfg.Budget.MemoryMarginBytes = 4 << 20
	cfg.Budget.HysteresisLimitBytes = 6 << 20
	cfg.Budget.DropLevelsLimitBytes = 3 << 20
	cfg.Budget.StopGrowthLimitBytes = 3 << 20
	cfg.Budget.StopAllLimitBytes = 1 << 20
	cfg.Budget.MinEvictBytes = 2 << 20
	cfg.Budget.MinFudgeFactor = 1.0

	cfg.Heuristics.LevelBias = 1
	cfg.Heuristics.MaxLevelCount = 11

	cfg.Throttle.MaxPerFrameRequestBytes = 1 << 20
	cfg.Throttle.MaxPerFrameRequests = 16
	cfg.Throttle.Workers = 2
}

// applyHighMemoryPreset 应用大池预设
func applyHighMemoryPreset(cfg *Config) {
	cfg.Budget.MemoryMarginBytes = 64 << 20
	cfg.Budget.HysteresisLimitBytes = 96 << 20
	cfg.Budget.DropLevelsLimitBytes = 32 << 20
	cfg.Budget.StopGrowthLimitBytes = 32 << 20
	cfg.Budget.StopAllLimitBytes = 16 << 20
	cfg.Budget.MinEvictBytes = 32 << 20
	cfg.Budget.MaxRequestGuarantee = Duration(20 * time.Second)

	cfg.Throttle.MaxPerFrameRequestBytes = 16 << 20
	cfg.Throttle.MaxPerFrameRequests = 256
	cfg.Throttle.Workers = 8
}

// NewLowMemoryConfig 创建小池配置
func NewLowMemoryConfig() *Config {
	cfg := NewConfig()
	applyLowMemoryPreset(cfg)
	return cfg
}

// NewHighMemoryConfig 创建大池配置
func NewHighMemoryConfig() *Config {
	cfg := NewConfig()
	applyHighMemoryPreset(cfg)
	return cfg
}
