package streaming

// Stage 轮次阶段
type Stage int

const (
	// StageCollect 采集
	StageCollect Stage = iota
	// StageSchedule 调度
	StageSchedule
	// StageApply 应用
	StageApply
)

// String 返回阶段名称
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

// Cursor 可恢复的轮次游标
type Cursor struct {
	Stage Stage
	Index int
}
