package streaming

import (
	"context"

	"github.com/benbjohnson/clock"
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
	Transfer   interfaces.TransferLayer
	Pool       interfaces.MemoryPool `optional:"true"`
	Clock      clock.Clock           `optional:"true"`
	EventBus   interfaces.EventBus   `optional:"true"`
	Reporter   interfaces.Reporter   `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Manager          *Manager
	StreamingManager interfaces.StreamingManager
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("streaming",
		fx.Provide(ProvideManager),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideManager 提供流式管理器
func ProvideManager(p Params) (Result, error) {
	var opts []Option
	if p.Clock != nil {
		opts = append(opts, WithClock(p.Clock))
	}
	if p.EventBus != nil {
		opts = append(opts, WithEventBus(p.EventBus))
	}
	if p.Reporter != nil {
		opts = append(opts, WithReporter(p.Reporter))
	}
	m, err := New(p.UnifiedCfg, p.Transfer, p.Pool, opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Manager: m, StreamingManager: m}, nil
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC      fx.Lifecycle
	Manager *Manager
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Manager.Close()
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
	Name = "streaming"
	// Description 模块描述
	Description = "流式管理器模块，驱动视点聚合、调度、预算分配与传输编排"
)
