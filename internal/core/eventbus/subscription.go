package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅
type Subscription struct {
	bus       *Bus
	typs      []string
	out       chan types.Event
	dropped   atomic.Int64
	closeOnce sync.Once
	closed    atomic.Bool
}

// Out 返回事件通道
func (s *Subscription) Out() <-chan types.Event {
	return s.out
}

// Dropped 返回因缓冲区满而丢弃的事件数
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。
// 关闭后会：
//  1. 从总线移除订阅
//  2. 关闭通道
func (s *Subscription) Close() error {
	s.bus.removeSub(s)
	s.closeChannel()
	return nil
}

// closeChannel 关闭通道
//
// 发射在节点锁内进行，removeSub 之后不会再有新的发送。
func (s *Subscription) closeChannel() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.out)
	})
}
