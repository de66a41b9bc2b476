// Package interfaces 定义 go-lodstream 公共接口
//
// 本文件定义外部资源层契约。
package interfaces

import (
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Resource 可流式资源
//
// 由外部资源层持有；核心只读取其元数据与当前常驻等级。
// ByteSize 必须是纯函数，注册时被预计算为查找表。
type Resource interface {
	// ID 返回资源唯一标识
	ID() types.ResourceID

	// LevelCount 返回细节等级数（1 表示不可流式）
	LevelCount() int

	// ByteSize 返回指定等级常驻时的字节数（level 取值 1..LevelCount）
	ByteSize(level int) int64

	// ResidentLevel 返回当前完全可用的等级
	ResidentLevel() int

	// Class 返回资源类别
	Class() types.ResourceClass

	// ReadyForTransfer 资源是否可安全发起传输（首次创建期间为 false）
	ReadyForTransfer() bool
}

// TransferLayer 外部异步传输层
//
// 所有方法都必须是非阻塞的，真正的字节搬运在资源层自己的队列中完成。
type TransferLayer interface {
	// BeginLevelChange 发起等级变更
	//
	// 返回错误表示外部层拒绝本次请求，资源保持当前状态。
	BeginLevelChange(res Resource, targetLevel int, prioritizeIO bool) error

	// CancelLevelChange 取消进行中的等级变更
	//
	// 返回 false 表示传输已越过不可回退点。
	CancelLevelChange(res Resource) bool

	// PollTransferStatus 查询传输状态
	PollTransferStatus(res Resource) types.TransferStatus
}

// MemoryPool 池内存查询
type MemoryPool interface {
	// QueryPoolMemory 返回池内存状态
	//
	// 第二个返回值为 false 表示不支持，此时以无限池模式运行。
	QueryPoolMemory() (types.PoolMemory, bool)
}
