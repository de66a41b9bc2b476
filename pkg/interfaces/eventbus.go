// Package interfaces 定义 go-lodstream 公共接口
//
// 本文件定义 EventBus 接口，提供诊断事件发布订阅功能。
package interfaces

import "github.com/dep2p/go-lodstream/pkg/types"

// EventBus 定义事件总线接口
//
// 发布永不阻塞：订阅者缓冲区满时事件被丢弃。
type EventBus interface {
	// Subscribe 订阅指定类型的事件，不传类型表示订阅全部
	Subscribe(eventTypes []string, opts ...SubscriptionOpt) (Subscription, error)

	// Publish 发布事件
	Publish(evt types.Event)

	// Close 关闭总线及所有订阅
	Close() error
}

// Subscription 定义事件订阅接口
type Subscription interface {
	// Out 返回接收事件的通道
	Out() <-chan types.Event

	// Dropped 返回因缓冲区满而丢弃的事件数
	Dropped() int64

	// Close 取消订阅
	Close() error
}

// SubscriptionOpt 订阅选项函数类型
type SubscriptionOpt func(*SubscriptionSettings)

// SubscriptionSettings 订阅设置（导出以供实现使用）
type SubscriptionSettings struct {
	Buffer int
}

// BufSize 设置订阅缓冲区大小
func BufSize(size int) SubscriptionOpt {
	return func(s *SubscriptionSettings) {
		s.Buffer = size
	}
}
