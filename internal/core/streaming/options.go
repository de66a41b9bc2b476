package streaming

import (
	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
)

// Option 管理器选项
type Option func(*options)

type options struct {
	clock    clock.Clock
	bus      interfaces.EventBus
	reporter interfaces.Reporter
}

// WithClock 注入时钟
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		o.clock = clk
	}
}

// WithEventBus 发布诊断事件
func WithEventBus(bus interfaces.EventBus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithReporter 上报统计
func WithReporter(r interfaces.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}
