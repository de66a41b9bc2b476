package registry

import (
	"fmt"
	"time"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Entry 被跟踪资源（TrackedResource）
//
// 所有字段只由控制角色修改。
type Entry struct {
	index   int
	id      types.ResourceID
	removed bool

	// Resource 外部资源句柄，注销后为 nil
	Resource interfaces.Resource

	// Class 资源类别
	Class types.ResourceClass

	// LevelCount 细节等级数
	LevelCount int

	// sizes 每级字节表，sizes[0] 为 0
	sizes []int64

	// Resident 当前常驻等级
	Resident int

	// Requested 传输目标等级，空闲时等于 Resident
	Requested int

	// Wanted 本轮期望等级
	Wanted int

	// MinAllowed 最小允许等级
	MinAllowed int

	// MaxAllowed 最大允许等级
	MaxAllowed int

	// Heuristic 决定 Wanted 的启发式
	Heuristic types.HeuristicKind

	// LastUsed 最后被绘制的时间
	LastUsed time.Time

	// OrphanedAt 失去全部静态放置的时间，零值表示未孤立
	OrphanedAt time.Time

	// ForceRefCount 强制常驻引用计数
	ForceRefCount int

	// ForceUntil 定时强制常驻截止时间
	ForceUntil time.Time

	// Boost 本轮放大系数，使用后重置为 1
	Boost float64

	// InFlight 是否有进行中的传输
	InFlight bool

	// Ready 是否可以发起传输
	Ready bool

	// IssuedAt 最近一次发起传输的时间
	IssuedAt time.Time

	// MinDistance 本轮最近放置距离（诊断）
	MinDistance float64

	// Priority 本轮优先级（诊断）
	Priority float64
}

// newEntry 从资源创建条目并预计算字节表
func newEntry(res interfaces.Resource, now time.Time) (*Entry, error) {
	if res == nil {
		return nil, ErrNilResource
	}
	id := res.ID()
	if id.IsEmpty() {
		return nil, types.ErrEmptyResourceID
	}
	count := res.LevelCount()
	if count < 1 {
		return nil, fmt.Errorf("%w: %s has %d", types.ErrInvalidLevelCount, id, count)
	}
	resident := res.ResidentLevel()
	if resident < 1 || resident > count {
		return nil, fmt.Errorf("%w: %s resident %d of %d", types.ErrInvalidResidentLevel, id, resident, count)
	}

	sizes := make([]int64, count+1)
	for level := 1; level <= count; level++ {
		sizes[level] = res.ByteSize(level)
		if sizes[level] < sizes[level-1] {
			return nil, fmt.Errorf("%w: %s level %d", types.ErrNonMonotonicSizes, id, level)
		}
	}

	return &Entry{
		index:      -1,
		id:         id,
		Resource:   res,
		Class:      res.Class(),
		LevelCount: count,
		sizes:      sizes,
		Resident:   resident,
		Requested:  resident,
		Wanted:     resident,
		MinAllowed: 1,
		MaxAllowed: count,
		Heuristic:  types.HeuristicNone,
		LastUsed:   now,
		Boost:      1,
		Ready:      res.ReadyForTransfer(),
	}, nil
}

// Index 返回稳定索引，尚未同步时为 -1
func (e *Entry) Index() int {
	return e.index
}

// ID 返回资源标识
func (e *Entry) ID() types.ResourceID {
	return e.id
}

// Removed 是否已被注销
func (e *Entry) Removed() bool {
	return e.removed
}

// Size 返回指定等级的字节数（越界时钳制）
func (e *Entry) Size(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > e.LevelCount {
		level = e.LevelCount
	}
	return e.sizes[level]
}

// Sizes 返回字节表副本（下标即等级）
func (e *Entry) Sizes() []int64 {
	out := make([]int64, len(e.sizes))
	copy(out, e.sizes)
	return out
}

// SizeTable 返回共享的字节表（只读，下标即等级）
//
// 字节表在注册后不再变化，可直接交给工作协程读取。
func (e *Entry) SizeTable() []int64 {
	return e.sizes
}

// Forced 在 now 时刻是否被强制常驻
func (e *Entry) Forced(now time.Time) bool {
	return e.ForceRefCount > 0 || now.Before(e.ForceUntil)
}

// Idle 是否没有进行中的传输
func (e *Entry) Idle() bool {
	return !e.InFlight
}

// Report 生成诊断快照
func (e *Entry) Report() types.ResourceReport {
	return types.ResourceReport{
		ID:            e.id,
		Class:         e.Class,
		Index:         e.index,
		LevelCount:    e.LevelCount,
		Resident:      e.Resident,
		Requested:     e.Requested,
		Wanted:        e.Wanted,
		MinAllowed:    e.MinAllowed,
		MaxAllowed:    e.MaxAllowed,
		Heuristic:     e.Heuristic.String(),
		MinDistance:   e.MinDistance,
		Priority:      e.Priority,
		InFlight:      e.InFlight,
		Ready:         e.Ready,
		OrphanedAt:    e.OrphanedAt,
		ForceRefCount: e.ForceRefCount,
		ForceUntil:    e.ForceUntil,
		Boost:         e.Boost,
		LastUsed:      e.LastUsed,
		ResidentBytes: e.Size(e.Resident),
		WantedBytes:   e.Size(e.Wanted),
		MaxBytes:      e.Size(e.LevelCount),
	}
}
