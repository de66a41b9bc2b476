package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 事件总线已关闭
	ErrClosed = errors.New("eventbus closed")
)

// DefaultBuffer 默认订阅缓冲区大小
const DefaultBuffer = 16

// wildcard 订阅全部事件的节点键
const wildcard = "*"

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	mu     sync.RWMutex
	closed bool

	// nodes 事件类型节点映射
	nodes map[string]*node

	defaultBuffer int
}

// node 事件类型节点
type node struct {
	lk        sync.Mutex
	typ       string
	sinks     []*Subscription
	dropCount atomic.Int64
}

// NewBus 创建新的事件总线
func NewBus() *Bus {
	return NewBusWithBuffer(DefaultBuffer)
}

// NewBusWithBuffer 创建指定默认缓冲区的事件总线
func NewBusWithBuffer(buffer int) *Bus {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Bus{
		nodes:         make(map[string]*node),
		defaultBuffer: buffer,
	}
}

var _ interfaces.EventBus = (*Bus)(nil)

// ============================================================================
// EventBus 接口实现
// ============================================================================

// Subscribe 订阅事件
//
// eventTypes 为空时订阅全部事件。
func (b *Bus) Subscribe(eventTypes []string, opts ...interfaces.SubscriptionOpt) (interfaces.Subscription, error) {
	settings := &interfaces.SubscriptionSettings{Buffer: b.defaultBuffer}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.Buffer < 1 {
		settings.Buffer = 1
	}

	keys := eventTypes
	if len(keys) == 0 {
		keys = []string{wildcard}
	}

	sub := &Subscription{
		bus:  b,
		typs: dedup(keys),
		out:  make(chan types.Event, settings.Buffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}
	for _, typ := range sub.typs {
		n, ok := b.nodes[typ]
		if !ok {
			n = &node{typ: typ}
			b.nodes[typ] = n
		}
		n.lk.Lock()
		n.sinks = append(n.sinks, sub)
		n.lk.Unlock()
	}
	return sub, nil
}

// Publish 发布事件，永不阻塞
func (b *Bus) Publish(evt types.Event) {
	if evt == nil {
		return
	}
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	typed := b.nodes[evt.Type()]
	all := b.nodes[wildcard]
	b.mu.RUnlock()

	if typed != nil {
		typed.emit(evt)
	}
	if all != nil {
		all.emit(evt)
	}
}

// Close 关闭总线及所有订阅
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	var subs []*Subscription
	seen := make(map[*Subscription]struct{})
	for _, n := range b.nodes {
		n.lk.Lock()
		for _, s := range n.sinks {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				subs = append(subs, s)
			}
		}
		n.sinks = nil
		n.lk.Unlock()
	}
	b.nodes = make(map[string]*node)
	b.mu.Unlock()

	for _, s := range subs {
		s.closeChannel()
	}
	logger.Debug("事件总线已关闭", "subscriptions", len(subs))
	return nil
}

// Types 返回当前有订阅者的事件类型
func (b *Bus) Types() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.nodes))
	for typ := range b.nodes {
		out = append(out, typ)
	}
	return out
}

// ============================================================================
// 内部方法
// ============================================================================

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, typ := range sub.typs {
		n, ok := b.nodes[typ]
		if !ok {
			continue
		}
		n.lk.Lock()
		for i, s := range n.sinks {
			if s == sub {
				n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
				break
			}
		}
		empty := len(n.sinks) == 0
		n.lk.Unlock()

		if empty {
			delete(b.nodes, typ)
		}
	}
}

// emit 发射事件到所有订阅者
func (n *node) emit(evt types.Event) {
	n.lk.Lock()
	defer n.lk.Unlock()

	for _, sub := range n.sinks {
		if sub.closed.Load() {
			continue
		}
		select {
		case sub.out <- evt:
		default:
			sub.dropped.Add(1)
			dropped := n.dropCount.Add(1)

			// 每丢弃 100 个事件警告一次，避免日志泛滥
			if dropped%100 == 1 {
				logger.Warn("慢消费者检测",
					"dropped", dropped,
					"type", evt.Type(),
					"reason", "subscriber buffer full")
			}
		}
	}
}

func dedup(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
