package heuristic

import (
	"time"

	"github.com/dep2p/go-lodstream/config"
)

// Config 启发式引擎配置
type Config struct {
	GlobalBias        float64
	LevelBias         int
	MinResidentLevels int
	MaxLevelCount     int
	MinDistanceSq     float64

	LastUsedFullWindow    time.Duration
	LastUsedReducedWindow time.Duration
	OrphanGrace           time.Duration
	OrphanRenderMargin    time.Duration

	EnableDynamic bool

	// MaxDistance 无放置信息时报告的距离
	MaxDistance float64

	Classes config.ClassesConfig
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建启发式配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	h := cfg.Heuristics
	return Config{
		GlobalBias:            h.GlobalBias,
		LevelBias:             h.LevelBias,
		MinResidentLevels:     h.MinResidentLevels,
		MaxLevelCount:         h.MaxLevelCount,
		MinDistanceSq:         h.MinDistanceSq,
		LastUsedFullWindow:    h.LastUsedFullWindow.Duration(),
		LastUsedReducedWindow: h.LastUsedReducedWindow.Duration(),
		OrphanGrace:           h.OrphanGrace.Duration(),
		OrphanRenderMargin:    h.OrphanRenderMargin.Duration(),
		EnableDynamic:         h.EnableDynamic,
		MaxDistance:           cfg.Priority.MaxDistance,
		Classes:               cfg.Classes,
	}
}
