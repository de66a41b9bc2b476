// Package types 定义 go-lodstream 公共类型
//
// 本文件定义事件相关类型。
package types

import (
	"time"
)

// ============================================================================
//                              Event - 事件接口
// ============================================================================

// Event 基础事件接口
type Event interface {
	// Type 返回事件类型
	Type() string

	// Timestamp 返回事件时间戳
	Timestamp() time.Time
}

// BaseEvent 基础事件实现
type BaseEvent struct {
	EventType string
	Time      time.Time
}

// Type 返回事件类型
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp 返回事件时间戳
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType string, at time.Time) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      at,
	}
}

// 事件类型常量
const (
	EventLevelChangeIssued    = "level_change.issued"
	EventLevelChangeCancelled = "level_change.cancelled"
	EventLevelChangeSettled   = "level_change.settled"
	EventTransferRejected     = "transfer.rejected"
	EventPassCompleted        = "pass.completed"
	EventGrowthSuspended      = "growth.suspended"
)

// ============================================================================
//                              传输事件
// ============================================================================

// EvtLevelChangeIssued 已向外部层发起等级变更
type EvtLevelChangeIssued struct {
	BaseEvent
	Resource     ResourceID
	From         int
	To           int
	PrioritizeIO bool
}

// EvtLevelChangeCancelled 等级变更已取消
type EvtLevelChangeCancelled struct {
	BaseEvent
	Resource  ResourceID
	Requested int
	Resident  int
}

// EvtLevelChangeSettled 等级变更已完成（提交或回退）
type EvtLevelChangeSettled struct {
	BaseEvent
	Resource ResourceID
	Resident int
	Latency  time.Duration
}

// EvtTransferRejected 外部层拒绝了等级变更
type EvtTransferRejected struct {
	BaseEvent
	Resource ResourceID
	Target   int
	Err      error
}

// ============================================================================
//                              轮次事件
// ============================================================================

// EvtPassCompleted 一次完整处理轮次结束
type EvtPassCompleted struct {
	BaseEvent
	Stats Stats
}

// EvtGrowthSuspended 内存极度紧张，增长暂停
type EvtGrowthSuspended struct {
	BaseEvent
	AvailableNow int64
	Passes       int
}
