package view

import (
	"github.com/dep2p/go-lodstream/config"
)

// Config 视点聚合配置
type Config struct {
	// DuplicateEpsilon 去重坐标容差
	DuplicateEpsilon float64

	// DefaultScreenSize 无任何视点时从属位置使用的屏幕尺寸
	DefaultScreenSize float64

	// DefaultFOVScreenSize 无任何视点时从属位置使用的视场角调整后屏幕尺寸
	DefaultFOVScreenSize float64

	// SplitScreenFactor 多个玩家视点时的屏幕尺寸折扣
	SplitScreenFactor float64
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建视点配置
func ConfigFromUnified(cfg *config.Config) Config {
	vc := config.DefaultViewsConfig()
	if cfg != nil {
		vc = cfg.Views
	}
	return Config{
		DuplicateEpsilon:     vc.DuplicateEpsilon,
		DefaultScreenSize:    vc.DefaultScreenSize,
		DefaultFOVScreenSize: vc.DefaultFOVScreenSize(),
		SplitScreenFactor:    vc.SplitScreenFactor,
	}
}
