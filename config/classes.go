package config

import (
	"fmt"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// ClassLimit 单个资源类别的限制
type ClassLimit struct {
	// MaxLevels 该类别最高等级，0 表示不限制
	MaxLevels int `json:"max_levels" yaml:"max_levels"`

	// StreamedLevels 可流式的等级数，其余等级始终常驻；0 表示不限制
	StreamedLevels int `json:"streamed_levels" yaml:"streamed_levels"`

	// ScreenSizeFactor 计算屏幕纹素时的额外乘数，0 视为 1
	ScreenSizeFactor float64 `json:"screen_size_factor" yaml:"screen_size_factor"`
}

// ClassesConfig 资源类别配置
type ClassesConfig struct {
	// PriorityClasses 在忽略世界资源窗口期间仍被处理的类别
	PriorityClasses []types.ResourceClass `json:"priority_classes" yaml:"priority_classes"`

	// Limits 按类别名的限制
	Limits map[string]ClassLimit `json:"limits" yaml:"limits"`
}

// DefaultClassesConfig 返回默认类别配置
func DefaultClassesConfig() ClassesConfig {
	return ClassesConfig{
		PriorityClasses: []types.ResourceClass{types.ClassCharacter},
		Limits: map[string]ClassLimit{
			string(types.ClassLightmap): {ScreenSizeFactor: 1.0},
		},
	}
}

// Limit 返回类别的限制（未配置时返回零值）
func (c ClassesConfig) Limit(class types.ResourceClass) ClassLimit {
	return c.Limits[class.String()]
}

// IsPriority 判断类别是否为优先类别
func (c ClassesConfig) IsPriority(class types.ResourceClass) bool {
	for _, p := range c.PriorityClasses {
		if p.String() == class.String() {
			return true
		}
	}
	return false
}

// Validate 验证类别配置
func (c ClassesConfig) Validate() error {
	for name, l := range c.Limits {
		if l.MaxLevels < 0 || l.StreamedLevels < 0 || l.ScreenSizeFactor < 0 {
			return fmt.Errorf("class %q: limits must be non-negative", name)
		}
	}
	return nil
}
