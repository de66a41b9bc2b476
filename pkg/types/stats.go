package types

import "time"

// ============================================================================
//                              Stats - 聚合统计
// ============================================================================

// Stats 一次完整处理轮次的聚合统计
//
// 仅用于诊断，正确性不依赖这些数值。
type Stats struct {
	// Pass 已完成的轮次数
	Pass uint64 `json:"pass"`

	// Tracked 已跟踪资源数
	Tracked int `json:"tracked"`

	// Candidates 本轮候选数
	Candidates int `json:"candidates"`

	// Wanting 想要更多等级的资源数
	Wanting int `json:"wanting"`

	// InFlight 进行中的传输数
	InFlight int `json:"in_flight"`

	// ResidentBytes 常驻字节总数
	ResidentBytes int64 `json:"resident_bytes"`

	// WantedBytes 达到 wantedLevel 所需的字节总数
	WantedBytes int64 `json:"wanted_bytes"`

	// PendingInBytes 进行中的增长传输字节
	PendingInBytes int64 `json:"pending_in_bytes"`

	// PendingOutBytes 进行中的收缩传输将释放的字节
	PendingOutBytes int64 `json:"pending_out_bytes"`

	// WantedInBytes 尚未发起的增长需求字节
	WantedInBytes int64 `json:"wanted_in_bytes"`

	// WantedOutBytes 尚未发起的收缩可释放字节
	WantedOutBytes int64 `json:"wanted_out_bytes"`

	// TempBytes 传输临时占用字节
	TempBytes int64 `json:"temp_bytes"`

	// Pool 池内存状态
	Pool PoolMemory `json:"pool"`

	// AvailableNow 当前可用（已扣除安全余量）
	AvailableNow int64 `json:"available_now"`

	// AvailableLater 所有传输落定后可用（已扣除安全余量）
	AvailableLater int64 `json:"available_later"`

	// FudgeFactor 距离修正系数
	FudgeFactor float64 `json:"fudge_factor"`

	// Issued 本轮发起的请求数
	Issued int `json:"issued"`

	// Cancelled 本轮成功取消的请求数
	Cancelled int `json:"cancelled"`

	// Rejected 本轮被外部层拒绝的请求数
	Rejected int `json:"rejected"`

	// Deferred 本轮因节流推迟的增长请求数
	Deferred int `json:"deferred"`

	// Suspended 本轮增长是否被暂停
	Suspended bool `json:"suspended"`

	// PassDuration 最近一次完整轮次耗时（墙钟时间）
	PassDuration time.Duration `json:"pass_duration"`

	// HeuristicBytes 按启发式归因的 wanted 字节
	HeuristicBytes map[string]int64 `json:"heuristic_bytes,omitempty"`
}

// PoolMemory 池内存状态
type PoolMemory struct {
	// Supported 外部层是否支持内存统计（不支持时以无限池模式运行）
	Supported bool `json:"supported"`

	// Allocated 已分配字节
	Allocated int64 `json:"allocated"`

	// Free 空闲字节
	Free int64 `json:"free"`

	// PendingAdjustment 已承诺但尚未执行的调整（正数为待分配，负数为待释放）
	PendingAdjustment int64 `json:"pending_adjustment"`
}

// Size 返回池总大小
func (p PoolMemory) Size() int64 {
	return p.Allocated + p.Free
}

// ============================================================================
//                              ResourceReport - 单资源诊断
// ============================================================================

// ResourceReport 单个资源的诊断快照
type ResourceReport struct {
	ID            ResourceID    `json:"id"`
	Class         ResourceClass `json:"class"`
	Index         int           `json:"index"`
	LevelCount    int           `json:"level_count"`
	Resident      int           `json:"resident"`
	Requested     int           `json:"requested"`
	Wanted        int           `json:"wanted"`
	MinAllowed    int           `json:"min_allowed"`
	MaxAllowed    int           `json:"max_allowed"`
	Heuristic     string        `json:"heuristic"`
	MinDistance   float64       `json:"min_distance"`
	Priority      float64       `json:"priority"`
	InFlight      bool          `json:"in_flight"`
	Ready         bool          `json:"ready"`
	ForceRefCount int           `json:"force_ref_count"`
	ForceUntil    time.Time     `json:"force_until,omitempty"`
	OrphanedAt    time.Time     `json:"orphaned_at,omitempty"`
	Boost         float64       `json:"boost"`
	LastUsed      time.Time     `json:"last_used"`
	ResidentBytes int64         `json:"resident_bytes"`
	WantedBytes   int64         `json:"wanted_bytes"`
	MaxBytes      int64         `json:"max_bytes"`

	// Latencies 最近的传输延迟（最新在前）
	Latencies []time.Duration `json:"latencies,omitempty"`
}
