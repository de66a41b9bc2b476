package heuristic

import (
	"time"

	"github.com/dep2p/go-lodstream/internal/core/placement"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Input 单个资源的只读快照
//
// 由控制角色在采集阶段填充，计算角色只读。
type Input struct {
	Index      int
	ID         types.ResourceID
	Class      types.ResourceClass
	LevelCount int
	Resident   int
	Requested  int
	InFlight   bool

	// Sizes 字节表，下标即等级，与 registry.Entry 共享且不可修改
	Sizes []int64

	LastUsed      time.Time
	OrphanedAt    time.Time
	ForceRefCount int
	ForceUntil    time.Time
	Boost         float64

	// MinAllowed / MaxAllowed 由 Engine 在评估时填充
	MinAllowed int
	MaxAllowed int
}

// Forced 在 now 时刻是否被强制常驻
func (in *Input) Forced(now time.Time) bool {
	return in.ForceRefCount > 0 || now.Before(in.ForceUntil)
}

// Size 返回等级字节数（越界时钳制）
func (in *Input) Size(level int) int64 {
	if level <= 0 || len(in.Sizes) == 0 {
		return 0
	}
	if level >= len(in.Sizes) {
		level = len(in.Sizes) - 1
	}
	return in.Sizes[level]
}

// Env 本轮所有资源共享的评估环境
type Env struct {
	Now        time.Time
	Views      []types.ViewInfo
	Placements *placement.Snapshot

	// Fudge 距离回退系数，>= 1
	Fudge float64
}

// Estimate 单个启发式的估计结果
type Estimate struct {
	Level    int
	Distance float64
	Applies  bool
}

// Decision 引擎对单个资源的最终评估
type Decision struct {
	MinAllowed int
	MaxAllowed int
	Wanted     int
	Heuristic  types.HeuristicKind
	Distance   float64
}
