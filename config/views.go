package config

import (
	"errors"
	"math"
)

// ViewsConfig 视点合并配置
type ViewsConfig struct {
	// DuplicateEpsilon 视点去重的坐标容差（世界单位）
	DuplicateEpsilon float64 `json:"duplicate_epsilon" yaml:"duplicate_epsilon" env:"DUPLICATE_EPSILON"`

	// DefaultScreenSize 没有任何视点时从属位置使用的屏幕尺寸
	DefaultScreenSize float64 `json:"default_screen_size" yaml:"default_screen_size" env:"DEFAULT_SCREEN_SIZE"`

	// DefaultFOVDegrees 没有任何视点时从属位置使用的视场角
	DefaultFOVDegrees float64 `json:"default_fov_degrees" yaml:"default_fov_degrees" env:"DEFAULT_FOV_DEGREES"`

	// SplitScreenFactor 多个本轮视点时的屏幕尺寸折扣
	SplitScreenFactor float64 `json:"split_screen_factor" yaml:"split_screen_factor" env:"SPLIT_SCREEN_FACTOR"`
}

// DefaultViewsConfig 返回默认视点配置
func DefaultViewsConfig() ViewsConfig {
	return ViewsConfig{
		DuplicateEpsilon:  0.5,
		DefaultScreenSize: 1280,
		DefaultFOVDegrees: 80,   // 半角 40 度
		SplitScreenFactor: 0.75, // 分屏时每个视点按 0.75 计算
	}
}

// DefaultFOVScreenSize 返回默认的视场角调整后屏幕尺寸
func (c ViewsConfig) DefaultFOVScreenSize() float64 {
	half := c.DefaultFOVDegrees / 2 * math.Pi / 180
	return c.DefaultScreenSize / math.Tan(half)
}

// Validate 验证视点配置
func (c ViewsConfig) Validate() error {
	if c.DuplicateEpsilon < 0 {
		return errors.New("duplicate epsilon must be non-negative")
	}
	if c.DefaultScreenSize <= 0 {
		return errors.New("default screen size must be positive")
	}
	if c.DefaultFOVDegrees <= 0 || c.DefaultFOVDegrees >= 180 {
		return errors.New("default fov must be in (0, 180)")
	}
	if c.SplitScreenFactor <= 0 || c.SplitScreenFactor > 1 {
		return errors.New("split screen factor must be in (0, 1]")
	}
	return nil
}
