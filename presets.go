package lodstream

import (
	"github.com/dep2p/go-lodstream/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetLowMemory 小池预设（移动端、掌机）
	PresetLowMemory = config.PresetLowMemory

	// PresetDefault 默认预设
	PresetDefault = config.PresetDefault

	// PresetHighMemory 大池预设（桌面、工作站）
	PresetHighMemory = config.PresetHighMemory
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetLowMemoryConfig 获取小池配置
//
// 特点：
//   - 更小的保留余量与阈值
//   - 更少的每帧请求
//   - 更低的评估并行度
func GetLowMemoryConfig() *config.Config {
	return config.NewLowMemoryConfig()
}

// GetDefaultConfig 获取默认配置
func GetDefaultConfig() *config.Config {
	return config.NewConfig()
}

// GetHighMemoryConfig 获取大池配置
func GetHighMemoryConfig() *config.Config {
	return config.NewHighMemoryConfig()
}

// GetPresetConfig 按名称获取预设配置，未知名称返回 nil
func GetPresetConfig(name string) *config.Config {
	cfg := config.NewConfig()
	if err := config.ApplyPreset(cfg, name); err != nil {
		return nil
	}
	return cfg
}

// ListPresets 返回所有可用的预设名称
func ListPresets() []string {
	return []string{PresetLowMemory, PresetDefault, PresetHighMemory}
}

// IsValidPreset 检查预设名称是否有效
func IsValidPreset(name string) bool {
	for _, p := range ListPresets() {
		if p == name {
			return true
		}
	}
	return false
}
