package lodstream

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（WithConfig）
	base *config.Config

	// 预设名称
	preset string

	// 配置文件路径
	configFile string

	// 是否应用 LODSTREAM_* 环境变量
	useEnv bool

	// 外部协作者
	transfer interfaces.TransferLayer
	pool     interfaces.MemoryPool
	clock    clock.Clock

	// 预算覆盖
	memoryMargin *int64

	// 节流覆盖
	workers       *int
	collectStages *int

	// 自省服务配置
	introspect struct {
		enable *bool
		addr   string
	}

	// 指标开关
	metrics *bool

	// 用户自定义 Fx 选项
	fxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toInternalConfig 转换为内部配置
//
// 应用顺序：基础配置 → 预设 → 配置文件 → 环境变量 → 显式选项。
func (o *options) toInternalConfig() (*config.Config, error) {
	var cfg *config.Config
	if o.base != nil {
		cfg = o.base.Clone()
	} else {
		cfg = config.NewConfig()
	}

	// 应用预设
	if o.preset != "" {
		if err := config.ApplyPreset(cfg, o.preset); err != nil {
			return nil, err
		}
	}

	// 配置文件整体替换已有配置
	if o.configFile != "" {
		loaded, err := config.LoadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.useEnv {
		if err := config.ApplyEnv(cfg); err != nil {
			return nil, err
		}
	}

	// 覆盖: 预算
	if o.memoryMargin != nil {
		cfg.Budget = cfg.Budget.WithMemoryMargin(*o.memoryMargin)
	}

	// 覆盖: 节流
	if o.workers != nil {
		cfg.Throttle = cfg.Throttle.WithWorkers(*o.workers)
	}
	if o.collectStages != nil {
		cfg.Throttle = cfg.Throttle.WithCollectStages(*o.collectStages)
	}

	// 覆盖: 自省服务配置
	if o.introspect.enable != nil {
		cfg.Diagnostics.EnableIntrospect = *o.introspect.enable
	}
	if o.introspect.addr != "" {
		cfg.Diagnostics.IntrospectAddr = o.introspect.addr
	}

	// 覆盖: 指标
	if o.metrics != nil {
		cfg.Metrics.Enabled = *o.metrics
	}

	return cfg, nil
}

// ============================================================================
//                              配置来源
// ============================================================================

// WithConfig 使用完整配置作为基础
//
// 配置会被克隆，调用方之后的修改不影响引擎。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("%w: 配置不能为空", ErrInvalidOption)
		}
		o.base = cfg
		return nil
	}
}

// WithPreset 使用预设配置
//
// 支持的预设：
//   - PresetLowMemory: 小池，更紧的阈值和节流
//   - PresetDefault: 默认配置
//   - PresetHighMemory: 大池，更宽松的阈值
func WithPreset(name string) Option {
	return func(o *options) error {
		if !IsValidPreset(name) {
			return fmt.Errorf("%w: 未知预设 %q", ErrInvalidOption, name)
		}
		o.preset = name
		return nil
	}
}

// WithConfigFile 从 JSON / YAML 文件加载配置
//
// 文件中未出现的字段保留默认值，文件配置替换基础配置与预设。
func WithConfigFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return fmt.Errorf("%w: 配置文件路径不能为空", ErrInvalidOption)
		}
		o.configFile = path
		return nil
	}
}

// WithEnv 应用 LODSTREAM_* 环境变量覆盖
func WithEnv() Option {
	return func(o *options) error {
		o.useEnv = true
		return nil
	}
}

// ============================================================================
//                              外部协作者
// ============================================================================

// WithTransferLayer 设置传输层（必需）
func WithTransferLayer(t interfaces.TransferLayer) Option {
	return func(o *options) error {
		if t == nil {
			return fmt.Errorf("%w: 传输层不能为空", ErrInvalidOption)
		}
		o.transfer = t
		return nil
	}
}

// WithMemoryPool 设置内存池
//
// 不设置时按无限池处理，只做等级对齐，不做预算分配。
func WithMemoryPool(p interfaces.MemoryPool) Option {
	return func(o *options) error {
		o.pool = p
		return nil
	}
}

// WithClock 设置时间源
//
// 测试中通常传入 clock.NewMock()。
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("%w: 时间源不能为空", ErrInvalidOption)
		}
		o.clock = c
		return nil
	}
}

// ============================================================================
//                              预算与节流
// ============================================================================

// WithMemoryMargin 设置内存池保留余量（字节）
func WithMemoryMargin(bytes int64) Option {
	return func(o *options) error {
		if bytes < 0 {
			return fmt.Errorf("%w: 内存余量不能为负数", ErrInvalidOption)
		}
		o.memoryMargin = &bytes
		return nil
	}
}

// WithWorkers 设置优先级评估的并行度
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("%w: 并行度必须大于 0", ErrInvalidOption)
		}
		o.workers = &n
		return nil
	}
}

// WithCollectStages 设置收集阶段被拆分的帧数
func WithCollectStages(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("%w: 收集阶段数必须大于 0", ErrInvalidOption)
		}
		o.collectStages = &n
		return nil
	}
}

// ============================================================================
//                              诊断
// ============================================================================

// WithIntrospect 启用或禁用本地自省服务
//
// addr 为空时使用默认地址 127.0.0.1:6070。
func WithIntrospect(enable bool, addr string) Option {
	return func(o *options) error {
		o.introspect.enable = &enable
		o.introspect.addr = addr
		return nil
	}
}

// WithMetrics 启用或禁用 Prometheus 指标
func WithMetrics(enable bool) Option {
	return func(o *options) error {
		o.metrics = &enable
		return nil
	}
}

// ============================================================================
//                              扩展
// ============================================================================

// WithFxOption 追加自定义 Fx 选项
//
// 用于向应用注入额外组件或在启动时获取内部组件。
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
