package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块输入参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	EventBus interfaces.EventBus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus(p Params) Result {
	buffer := DefaultBuffer
	if p.UnifiedCfg != nil && p.UnifiedCfg.Diagnostics.EventBuffer > 0 {
		buffer = p.UnifiedCfg.Diagnostics.EventBuffer
	}
	return Result{
		EventBus: NewBusWithBuffer(buffer),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	EventBus interfaces.EventBus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.EventBus.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "事件总线模块，发布流式诊断事件"
)
