package lodstream

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/eventbus"
	"github.com/dep2p/go-lodstream/internal/core/metrics"
	"github.com/dep2p/go-lodstream/internal/core/streaming"
	"github.com/dep2p/go-lodstream/internal/debug/introspect"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
)

// buildFxApp 构建 Fx 应用
//
// 组装所有内部模块，采用条件加载策略：
//   - 核心模块：必须加载（EventBus, Streaming）
//   - 条件模块：根据配置加载（Metrics, Introspect）
//   - 扩展模块：用户自定义 Fx 选项
//
// 加载顺序（按依赖）：
//  1. 配置与外部协作者
//  2. EventBus → Metrics → Streaming
//  3. Introspect（依赖 Streaming 与 Metrics）

var fxLogger = log.Logger("lodstream/fx")

func buildFxApp(cfg *config.Config, o *options, engine *Engine) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if o.transfer == nil {
		return nil, ErrNoTransferLayer
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 配置与外部协作者注入
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(func() interfaces.TransferLayer { return o.transfer }),
	}
	if o.pool != nil {
		modules = append(modules, fx.Provide(func() interfaces.MemoryPool { return o.pool }))
	}
	if o.clock != nil {
		modules = append(modules, fx.Provide(func() clock.Clock { return o.clock }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 核心模块（必须加载）
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		eventbus.Module(), // 事件总线
		metrics.Module(),  // 指标（禁用时提供 NopReporter）
		streaming.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 自省服务（条件加载）
	// ════════════════════════════════════════════════════════════════════════
	if cfg.Diagnostics.EnableIntrospect {
		modules = append(modules, introspect.Module())
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. 用户自定义选项
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, o.fxOptions...)

	// ════════════════════════════════════════════════════════════════════════
	// 6. 注入引擎组件
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(func(c engineComponents) {
		injectEngineComponents(engine, c)
	}))

	fxLogger.Debug("Fx 模块已组装",
		"modules", len(modules),
		"introspect", cfg.Diagnostics.EnableIntrospect,
		"metrics", cfg.Metrics.Enabled,
		"limitedPool", o.pool != nil)

	// ════════════════════════════════════════════════════════════════════════
	// 7. 创建 Fx App
	// ════════════════════════════════════════════════════════════════════════
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.Options(modules...),
	)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("failed to build fx app: %w", err)
	}
	return app, nil
}

// engineComponents 引擎依赖的内部组件
type engineComponents struct {
	fx.In

	Manager    *streaming.Manager
	EventBus   interfaces.EventBus
	Collector  *metrics.Collector `optional:"true"`
	Introspect *introspect.Server `optional:"true"`
}

// injectEngineComponents 将 Fx 创建的组件注入引擎
func injectEngineComponents(engine *Engine, c engineComponents) {
	engine.manager = c.Manager
	engine.StreamingManager = c.Manager
	engine.bus = c.EventBus
	engine.collector = c.Collector
	engine.introspect = c.Introspect
}
