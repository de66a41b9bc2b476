package scheduler

import (
	"github.com/dep2p/go-lodstream/internal/core/heuristic"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Job 一次调度的不可变输入
type Job struct {
	// Pass 轮次编号
	Pass uint64

	// Inputs 资源快照，Inputs[i].Index 为注册表索引
	Inputs []heuristic.Input

	// Env 本轮共享环境
	Env heuristic.Env

	// DisregardWorld 是否只处理优先类别
	DisregardWorld bool
}

// Advice 单个资源的评估结果
type Advice struct {
	Index      int
	ID         types.ResourceID
	MinAllowed int
	MaxAllowed int
	Wanted     int
	Heuristic  types.HeuristicKind
	Distance   float64
	Priority   float64

	// Excluded 本轮被忽略（忽略世界资源窗口）
	Excluded bool
}

// Aggregate 本轮聚合统计
type Aggregate struct {
	ResidentBytes   int64
	WantedBytes     int64
	PendingInBytes  int64
	PendingOutBytes int64
	WantedInBytes   int64
	WantedOutBytes  int64
	TempBytes       int64

	Wanting  int
	InFlight int
	Excluded int

	// HeuristicBytes 按决定性启发式归因的 wanted 字节
	HeuristicBytes [types.HeuristicNone + 1]int64
}

func (a *Aggregate) merge(o *Aggregate) {
	a.ResidentBytes += o.ResidentBytes
	a.WantedBytes += o.WantedBytes
	a.PendingInBytes += o.PendingInBytes
	a.PendingOutBytes += o.PendingOutBytes
	a.WantedInBytes += o.WantedInBytes
	a.WantedOutBytes += o.WantedOutBytes
	a.TempBytes += o.TempBytes
	a.Wanting += o.Wanting
	a.InFlight += o.InFlight
	a.Excluded += o.Excluded
	for i := range a.HeuristicBytes {
		a.HeuristicBytes[i] += o.HeuristicBytes[i]
	}
}

// HeuristicMap 以启发式名称为键返回归因字节
func (a *Aggregate) HeuristicMap() map[string]int64 {
	out := make(map[string]int64)
	for k, v := range a.HeuristicBytes {
		if v != 0 {
			out[types.HeuristicKind(k).String()] = v
		}
	}
	return out
}

// Result 一次调度的输出
type Result struct {
	Pass uint64

	// Advice 与 Job.Inputs 一一对应
	Advice []Advice

	// Candidates Advice 下标，按优先级降序，同优先级按索引升序
	Candidates []int

	Stats Aggregate
}
