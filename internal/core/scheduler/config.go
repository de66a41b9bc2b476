package scheduler

import (
	"time"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/heuristic"
)

// Config 调度器配置
type Config struct {
	// Workers 并行数
	Workers int

	LevelWeight      float64
	DistanceWeight   float64
	TimeWeight       float64
	ForcedBonus      float64
	MaxLevelCountRef int
	MaxDistance      float64
	MaxSinceUsed     time.Duration

	// Classes 忽略世界资源期间仍处理的类别
	Classes config.ClassesConfig

	Heuristic heuristic.Config
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建调度器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	p := cfg.Priority
	workers := cfg.Throttle.Workers
	if workers < 1 {
		workers = 1
	}
	return Config{
		Workers:          workers,
		LevelWeight:      p.LevelWeight,
		DistanceWeight:   p.DistanceWeight,
		TimeWeight:       p.TimeWeight,
		ForcedBonus:      p.ForcedBonus,
		MaxLevelCountRef: p.MaxLevelCountRef,
		MaxDistance:      p.MaxDistance,
		MaxSinceUsed:     p.MaxSinceUsed.Duration(),
		Classes:          cfg.Classes,
		Heuristic:        heuristic.ConfigFromUnified(cfg),
	}
}
