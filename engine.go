package lodstream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/metrics"
	"github.com/dep2p/go-lodstream/internal/core/streaming"
	"github.com/dep2p/go-lodstream/internal/debug/introspect"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
)

var logger = log.Logger("lodstream")

// ════════════════════════════════════════════════════════════════════════════
//                              引擎状态
// ════════════════════════════════════════════════════════════════════════════

// EngineState 引擎生命周期状态
type EngineState int

const (
	// StateIdle 已创建，未启动
	StateIdle EngineState = iota
	// StateStarting 正在启动
	StateStarting
	// StateRunning 运行中
	StateRunning
	// StateStopping 正在停止
	StateStopping
	// StateStopped 已停止
	StateStopped
)

// String 返回状态名称
func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// startTimeout Fx App 启动超时
const startTimeout = 30 * time.Second

// stopTimeout Fx App 停止超时
const stopTimeout = 15 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              Engine
// ════════════════════════════════════════════════════════════════════════════

// Engine 流式引擎门面
//
// Engine 内嵌 StreamingManager，宿主 API（视点、资源、放置、诊断）直接可用；
// New 之后即可注册资源，Tick 要求引擎处于运行状态。
type Engine struct {
	interfaces.StreamingManager

	mu      sync.Mutex
	state   EngineState
	started bool
	closed  bool

	app *fx.App
	cfg *config.Config

	// 内部组件（由 Fx 注入）
	manager    *streaming.Manager
	bus        interfaces.EventBus
	collector  *metrics.Collector
	introspect *introspect.Server
}

// New 创建引擎，不启动
//
// 必须通过 WithTransferLayer 提供传输层。
func New(opts ...Option) (*Engine, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	cfg, err := o.toInternalConfig()
	if err != nil {
		return nil, fmt.Errorf("build config: %w", err)
	}

	engine := &Engine{cfg: cfg}
	app, err := buildFxApp(cfg, o, engine)
	if err != nil {
		return nil, err
	}
	engine.app = app

	logger.Info("引擎已创建", "version", Version, "limitedPool", o.pool != nil)
	return engine, nil
}

// Start 创建并启动引擎
func Start(ctx context.Context, opts ...Option) (*Engine, error) {
	engine, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := engine.Start(ctx); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return engine, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期管理
// ════════════════════════════════════════════════════════════════════════════

// Start 启动引擎（调用所有模块的 OnStart）
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if e.started {
		return ErrAlreadyStarted
	}

	e.state = StateStarting
	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := e.app.Start(startCtx); err != nil {
		e.state = StateIdle
		logger.Error("引擎启动失败", "error", err)
		return fmt.Errorf("start failed: %w", err)
	}

	e.started = true
	e.state = StateRunning
	logger.Info("引擎已启动")
	return nil
}

// Stop 停止引擎（调用所有模块的 OnStop）
//
// 停止后引擎不可再启动。
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopLocked(ctx)
}

// Close 停止并释放引擎，可重复调用
func (e *Engine) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopLocked(ctx)
}

func (e *Engine) stopLocked(ctx context.Context) error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.state = StateStopping

	var err error
	if e.started {
		err = multierr.Append(err, e.app.Stop(ctx))
	} else if e.manager != nil {
		// 未启动时 OnStop 不会执行，直接释放组件
		err = multierr.Append(err, e.manager.Close())
		if e.bus != nil {
			err = multierr.Append(err, e.bus.Close())
		}
	}

	e.state = StateStopped
	if err != nil {
		logger.Warn("引擎停止时出现错误", "error", err)
		return err
	}
	logger.Info("引擎已停止")
	return nil
}

// State 返回当前状态
func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Tick 推进一次处理
//
// 引擎未启动时返回 ErrNotStarted，关闭后返回 ErrEngineClosed。
func (e *Engine) Tick(ctx context.Context, deltaTime float64, exhaustive bool) error {
	e.mu.Lock()
	switch {
	case e.closed:
		e.mu.Unlock()
		return ErrEngineClosed
	case !e.started:
		e.mu.Unlock()
		return ErrNotStarted
	}
	e.mu.Unlock()
	return e.StreamingManager.Tick(ctx, deltaTime, exhaustive)
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// Config 返回生效配置的副本
func (e *Engine) Config() *config.Config {
	return e.cfg.Clone()
}

// EventBus 返回诊断事件总线
func (e *Engine) EventBus() interfaces.EventBus {
	return e.bus
}

// MetricsGatherer 返回指标采集器，禁用指标时返回 nil
func (e *Engine) MetricsGatherer() prometheus.Gatherer {
	if e.collector == nil {
		return nil
	}
	return e.collector.Registry()
}

// TransferRate 返回最近每秒完成的传输数，禁用指标时返回 0
func (e *Engine) TransferRate() float64 {
	if e.collector == nil {
		return 0
	}
	return e.collector.TransferRate()
}

// IntrospectAddr 返回自省服务的实际监听地址，未启用时返回空串
func (e *Engine) IntrospectAddr() string {
	if e.introspect == nil {
		return ""
	}
	return e.introspect.Addr()
}
