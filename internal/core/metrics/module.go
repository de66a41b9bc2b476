package metrics

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Result Metrics 输出
type Result struct {
	fx.Out

	Collector *Collector
	Reporter  interfaces.Reporter
}

// Module 返回 metrics 的 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(ProvideReporter),
	)
}

// ProvideReporter 从参数创建 Reporter
//
// 禁用时 Collector 为 nil，Reporter 为 NopReporter。
func ProvideReporter(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{Reporter: NopReporter{}}
	}
	c := NewCollector(cfg.Namespace, p.Clock)
	return Result{Collector: c, Reporter: c}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "metrics"
	// Description 模块描述
	Description = "指标模块，以 Prometheus 格式导出流式统计"
)
