package config

import (
	"errors"
	"time"
)

// HeuristicsConfig 启发式配置
type HeuristicsConfig struct {
	// GlobalBias 屏幕纹素到等级映射前的全局乘数
	GlobalBias float64 `json:"global_bias" yaml:"global_bias" env:"GLOBAL_BIAS"`

	// LevelBias 从最高等级中扣除的等级数
	LevelBias int `json:"level_bias" yaml:"level_bias" env:"LEVEL_BIAS"`

	// MinResidentLevels 始终常驻的最少等级
	MinResidentLevels int `json:"min_resident_levels" yaml:"min_resident_levels" env:"MIN_RESIDENT_LEVELS"`

	// MaxLevelCount 全局等级上限，0 表示不限制
	MaxLevelCount int `json:"max_level_count" yaml:"max_level_count" env:"MAX_LEVEL_COUNT"`

	// MinDistanceSq 距离平方下限，不超过 1 时视为位于包围球内
	MinDistanceSq float64 `json:"min_distance_sq" yaml:"min_distance_sq" env:"MIN_DISTANCE_SQ"`

	// LastUsedFullWindow 在此时间内被使用过则需要最高等级
	LastUsedFullWindow Duration `json:"last_used_full_window" yaml:"last_used_full_window" env:"LAST_USED_FULL_WINDOW"`

	// LastUsedReducedWindow 在此时间内被使用过则需要最高等级减一
	LastUsedReducedWindow Duration `json:"last_used_reduced_window" yaml:"last_used_reduced_window" env:"LAST_USED_REDUCED_WINDOW"`

	// OrphanGrace 失去全部静态放置后的衰减窗口
	OrphanGrace Duration `json:"orphan_grace" yaml:"orphan_grace" env:"ORPHAN_GRACE"`

	// OrphanRenderMargin 判断"孤儿化后是否被绘制过"的容差
	OrphanRenderMargin Duration `json:"orphan_render_margin" yaml:"orphan_render_margin" env:"ORPHAN_RENDER_MARGIN"`

	// BoostPlayerFactor 玩家视点目标的放大系数
	BoostPlayerFactor float64 `json:"boost_player_factor" yaml:"boost_player_factor" env:"BOOST_PLAYER_FACTOR"`

	// EnableDynamic 是否启用动态放置启发式
	EnableDynamic bool `json:"enable_dynamic" yaml:"enable_dynamic" env:"ENABLE_DYNAMIC"`
}

// DefaultHeuristicsConfig 返回默认启发式配置
func DefaultHeuristicsConfig() HeuristicsConfig {
	return HeuristicsConfig{
		// ════════════════════════════════════════════════════════════════════
		// 等级映射
		// ════════════════════════════════════════════════════════════════════
		GlobalBias:        1.0,
		LevelBias:         0,
		MinResidentLevels: 1,
		MaxLevelCount:     0,
		MinDistanceSq:     1.0,

		// ════════════════════════════════════════════════════════════════════
		// 时间窗口
		// ════════════════════════════════════════════════════════════════════
		LastUsedFullWindow:    Duration(45 * time.Second),
		LastUsedReducedWindow: Duration(90 * time.Second),
		OrphanGrace:           Duration(91 * time.Second),
		OrphanRenderMargin:    Duration(5 * time.Second),

		// ════════════════════════════════════════════════════════════════════
		// 动态放置
		// ════════════════════════════════════════════════════════════════════
		BoostPlayerFactor: 3.0,
		EnableDynamic:     true,
	}
}

// Validate 验证启发式配置
func (c HeuristicsConfig) Validate() error {
	if c.GlobalBias <= 0 {
		return errors.New("global bias must be positive")
	}
	if c.LevelBias < 0 {
		return errors.New("level bias must be non-negative")
	}
	if c.MinResidentLevels < 1 {
		return errors.New("min resident levels must be at least 1")
	}
	if c.MaxLevelCount < 0 {
		return errors.New("max level count must be non-negative")
	}
	if c.MinDistanceSq <= 0 {
		return errors.New("min distance squared must be positive")
	}
	if c.LastUsedFullWindow > c.LastUsedReducedWindow {
		return errors.New("last used full window must not exceed reduced window")
	}
	if c.OrphanGrace < 0 || c.OrphanRenderMargin < 0 {
		return errors.New("orphan windows must be non-negative")
	}
	if c.BoostPlayerFactor <= 0 {
		return errors.New("boost player factor must be positive")
	}
	return nil
}

// WithGlobalBias 设置全局乘数
func (c HeuristicsConfig) WithGlobalBias(bias float64) HeuristicsConfig {
	c.GlobalBias = bias
	return c
}

// WithMinResidentLevels 设置最少常驻等级
func (c HeuristicsConfig) WithMinResidentLevels(n int) HeuristicsConfig {
	c.MinResidentLevels = n
	return c
}
