package scheduler

import "errors"

var (
	// ErrNilJob 任务为空
	ErrNilJob = errors.New("scheduler: nil job")
)
