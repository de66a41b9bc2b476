// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON / YAML 加载，支持 LODSTREAM_* 环境变量覆盖
//   - 支持预设配置（low-memory/default/high-memory）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Budget.MemoryMarginBytes = 32 << 20
//
//	// 从文件加载并应用环境变量
//	cfg, err := config.LoadFile("lodstream.yaml")
//	if err == nil {
//	    err = config.ApplyEnv(cfg)
//	}
//
//	// 应用预设到现有配置
//	config.ApplyPreset(cfg, "low-memory")
package config

import (
	"go.uber.org/multierr"
)

// Config 是 go-lodstream 的完整配置结构
//
// 配置按照功能模块组织：
//   - Budget: 内存预算阈值与距离修正
//   - Views: 视点合并参数
//   - Heuristics: 启发式与等级映射参数
//   - Priority: 优先级权重
//   - Throttle: 每帧节流与增量处理
//   - Classes: 资源类别限制
//   - Diagnostics: 自省服务
//   - Metrics: Prometheus 指标
type Config struct {
	// Budget 内存预算配置
	Budget BudgetConfig `json:"budget" yaml:"budget" envPrefix:"BUDGET_"`

	// Views 视点配置
	Views ViewsConfig `json:"views" yaml:"views" envPrefix:"VIEWS_"`

	// Heuristics 启发式配置
	Heuristics HeuristicsConfig `json:"heuristics" yaml:"heuristics" envPrefix:"HEURISTICS_"`

	// Priority 优先级权重配置
	Priority PriorityConfig `json:"priority" yaml:"priority" envPrefix:"PRIORITY_"`

	// Throttle 节流配置
	Throttle ThrottleConfig `json:"throttle" yaml:"throttle" envPrefix:"THROTTLE_"`

	// Classes 资源类别配置
	Classes ClassesConfig `json:"classes" yaml:"classes"`

	// Diagnostics 诊断服务配置
	Diagnostics DiagnosticsConfig `json:"diagnostics" yaml:"diagnostics" envPrefix:"DIAGNOSTICS_"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，适用于大多数场景。
func NewConfig() *Config {
	return &Config{
		Budget:      DefaultBudgetConfig(),
		Views:       DefaultViewsConfig(),
		Heuristics:  DefaultHeuristicsConfig(),
		Priority:    DefaultPriorityConfig(),
		Throttle:    DefaultThrottleConfig(),
		Classes:     DefaultClassesConfig(),
		Diagnostics: DefaultDiagnosticsConfig(),
		Metrics:     DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 汇总所有子配置的错误后一次性返回。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Budget.Validate(),
		c.Views.Validate(),
		c.Heuristics.Validate(),
		c.Priority.Validate(),
		c.Throttle.Validate(),
		c.Classes.Validate(),
		c.Diagnostics.Validate(),
		c.Metrics.Validate(),
	)
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Classes.PriorityClasses = append(out.Classes.PriorityClasses[:0:0], c.Classes.PriorityClasses...)
	if c.Classes.Limits != nil {
		out.Classes.Limits = make(map[string]ClassLimit, len(c.Classes.Limits))
		for k, v := range c.Classes.Limits {
			out.Classes.Limits[k] = v
		}
	}
	return &out
}
