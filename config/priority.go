package config

import (
	"errors"
	"time"
)

// PriorityConfig 优先级权重配置
//
// priority = LevelWeight * wanted / MaxLevelCountRef
//
//   - DistanceWeight * (1 - sqrt(clamp(dist, 1, MaxDistance) / MaxDistance)) * (1 - TimeWeight * clamp(sinceUsed, 1s, MaxSinceUsed) / MaxSinceUsed)
//   - ForcedBonus * forced
type PriorityConfig struct {
	LevelWeight      float64  `json:"level_weight" yaml:"level_weight" env:"LEVEL_WEIGHT"`
	DistanceWeight   float64  `json:"distance_weight" yaml:"distance_weight" env:"DISTANCE_WEIGHT"`
	TimeWeight       float64  `json:"time_weight" yaml:"time_weight" env:"TIME_WEIGHT"`
	ForcedBonus      float64  `json:"forced_bonus" yaml:"forced_bonus" env:"FORCED_BONUS"`
	MaxLevelCountRef int      `json:"max_level_count_ref" yaml:"max_level_count_ref" env:"MAX_LEVEL_COUNT_REF"`
	MaxDistance      float64  `json:"max_distance" yaml:"max_distance" env:"MAX_DISTANCE"`
	MaxSinceUsed     Duration `json:"max_since_used" yaml:"max_since_used" env:"MAX_SINCE_USED"`
}

// DefaultPriorityConfig 返回默认优先级配置
func DefaultPriorityConfig() PriorityConfig {
	return PriorityConfig{
		LevelWeight:      1.0,
		DistanceWeight:   1.0,
		TimeWeight:       0.5,
		ForcedBonus:      100,
		MaxLevelCountRef: 13,
		MaxDistance:      10000,
		MaxSinceUsed:     Duration(90 * time.Second),
	}
}

// Validate 验证优先级配置
func (c PriorityConfig) Validate() error {
	if c.LevelWeight < 0 || c.DistanceWeight < 0 || c.ForcedBonus < 0 {
		return errors.New("priority weights must be non-negative")
	}
	if c.TimeWeight < 0 || c.TimeWeight > 1 {
		return errors.New("time weight must be in [0, 1]")
	}
	if c.MaxLevelCountRef <= 0 {
		return errors.New("max level count reference must be positive")
	}
	if c.MaxDistance < 1 {
		return errors.New("max distance must be at least 1")
	}
	if c.MaxSinceUsed < Duration(time.Second) {
		return errors.New("max since used must be at least 1s")
	}
	return nil
}
