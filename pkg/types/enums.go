package types

// ============================================================================
//                              ResourceClass - 资源分类
// ============================================================================

// ResourceClass 资源分类
//
// 分类用于按类限制流式等级，以及在关卡切换期间决定哪些资源仍然优先处理。
type ResourceClass string

const (
	// ClassWorld 世界资源（默认分类）
	ClassWorld ResourceClass = "world"
	// ClassCharacter 角色资源（关卡切换期间始终优先）
	ClassCharacter ResourceClass = "character"
	// ClassEffects 特效资源
	ClassEffects ResourceClass = "effects"
	// ClassLightmap 光照贴图
	ClassLightmap ResourceClass = "lightmap"
)

// String 返回分类的字符串表示
func (c ResourceClass) String() string {
	if c == "" {
		return string(ClassWorld)
	}
	return string(c)
}

// ============================================================================
//                              TransferStatus - 传输状态
// ============================================================================

// TransferStatus 外部资源层报告的传输状态
type TransferStatus int

const (
	// TransferIdle 无进行中的传输
	TransferIdle TransferStatus = iota
	// TransferInFlight 传输进行中
	TransferInFlight
	// TransferCancelling 取消进行中
	TransferCancelling
)

// String 返回传输状态的字符串表示
func (s TransferStatus) String() string {
	switch s {
	case TransferIdle:
		return "idle"
	case TransferInFlight:
		return "in-flight"
	case TransferCancelling:
		return "cancelling"
	default:
		return "unknown"
	}
}

// Pending 是否仍有未完成的传输
func (s TransferStatus) Pending() bool {
	return s == TransferInFlight || s == TransferCancelling
}

// ============================================================================
//                              HeuristicKind - 启发式类型
// ============================================================================

// HeuristicKind 决定 wantedLevel 的启发式
//
// 数值越小优先级越高，用于在多个启发式给出相同等级时选出归因。
type HeuristicKind int

const (
	// HeuristicForced 强制常驻（引用计数或定时强制）
	HeuristicForced HeuristicKind = iota
	// HeuristicDynamic 动态放置（移动/生成对象）
	HeuristicDynamic
	// HeuristicStatic 静态放置（关卡几何）
	HeuristicStatic
	// HeuristicOrphaned 刚失去全部放置信息
	HeuristicOrphaned
	// HeuristicLastUsed 最后使用时间回退
	HeuristicLastUsed
	// HeuristicNone 尚未评估
	HeuristicNone
)

// String 返回启发式类型的字符串表示
func (k HeuristicKind) String() string {
	switch k {
	case HeuristicForced:
		return "forced"
	case HeuristicDynamic:
		return "dynamic"
	case HeuristicStatic:
		return "static"
	case HeuristicOrphaned:
		return "orphaned"
	case HeuristicLastUsed:
		return "last-used"
	default:
		return "none"
	}
}

// ============================================================================
//                              Stage - 处理阶段
// ============================================================================

// Stage 增量处理游标所处的阶段
type Stage int

const (
	// StageCollect 轮询传输状态并采集快照
	StageCollect Stage = iota
	// StageSchedule 派发优先级计算
	StageSchedule
	// StageApply 等待计算结果并执行预算分配
	StageApply
)

// String 返回阶段的字符串表示
func (s Stage) String() string {
	switch s {
	case StageCollect:
		return "collect"
	case StageSchedule:
		return "schedule"
	case StageApply:
		return "apply"
	default:
		return "unknown"
	}
}
