// Package interfaces 定义 go-lodstream 公共接口
//
// 本文件定义 StreamingManager 宿主 API。
package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// StreamingManager 流式管理器（上下文对象）
//
// 所有方法并发安全，由内部互斥锁串行化；宿主通常每帧调用一次 Tick。
type StreamingManager interface {
	// ========== 视点 ==========

	// SubmitView 提交视点
	//
	// duration 为 0 表示仅本轮有效；大于 0 表示持续视点。
	SubmitView(origin types.Vector, screenSize, fovScreenSize, boost float64, override bool, duration float64)

	// SubmitSlaveLocation 提交从属位置，在解析时复用首个视点的屏幕参数
	SubmitSlaveLocation(origin types.Vector, boost float64, override bool, duration float64)

	// ========== 轮次 ==========

	// Tick 推进一次处理
	//
	// exhaustive 为 true 时同步跑完整个轮次并关闭节流。
	// 仅在 ctx 结束时返回错误，轮次进度被保留。
	Tick(ctx context.Context, deltaTime float64, exhaustive bool) error

	// BlockUntilSettled 轮询直到没有进行中的传输或超时，返回仍在进行的数量
	//
	// timeLimit <= 0 表示不限时。
	BlockUntilSettled(ctx context.Context, timeLimit time.Duration) int

	// SetPaused 暂停/恢复流式
	SetPaused(paused bool)

	// ========== 资源 ==========

	// RegisterResource 注册资源（下一轮开始时可见）
	RegisterResource(res Resource) error

	// UnregisterResource 注销资源
	UnregisterResource(id types.ResourceID) bool

	// Pin 增加强制常驻引用计数
	Pin(id types.ResourceID) bool

	// Unpin 减少强制常驻引用计数
	Unpin(id types.ResourceID) bool

	// Boost 设置资源本轮放大系数
	Boost(id types.ResourceID, factor float64) bool

	// Touch 记录资源被绘制
	Touch(id types.ResourceID) bool

	// ForceResidentFor 在 d 时间内强制常驻
	ForceResidentFor(id types.ResourceID, d time.Duration) bool

	// CancelForcedResources 清除所有定时强制常驻
	CancelForcedResources()

	// StreamOut 紧急驱逐至少 required 字节，返回实际计划释放的字节与是否满足
	StreamOut(required int64) (int64, bool)

	// ========== 放置 ==========

	// AddLevel 添加关卡静态放置
	AddLevel(id types.LevelID, instances []types.StaticInstance) error

	// RemoveLevel 移除关卡，其资源进入孤儿状态
	RemoveLevel(id types.LevelID) bool

	// AttachDynamic 挂接动态放置
	AttachDynamic(owner types.OwnerID, instances []types.DynamicInstance) error

	// UpdateDynamic 更新动态放置
	UpdateDynamic(owner types.OwnerID, instances []types.DynamicInstance) error

	// DetachDynamic 解除动态放置
	DetachDynamic(owner types.OwnerID) bool

	// BoostOwner 设置放置所有者本轮放大系数
	BoostOwner(owner types.OwnerID, factor float64) bool

	// ========== 关卡切换 ==========

	// NotifyLevelChange 通知关卡切换，启用最小请求限制
	NotifyLevelChange()

	// DisregardWorldResources 在接下来 passes 轮内忽略非优先类别资源
	DisregardWorldResources(passes int)

	// ========== 诊断 ==========

	// Stats 返回最近一轮统计
	Stats() types.Stats

	// Inspect 返回单个资源的诊断快照
	Inspect(id types.ResourceID) (types.ResourceReport, bool)

	// Resources 返回所有资源诊断快照（按优先级降序）
	Resources() []types.ResourceReport
}
