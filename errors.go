package lodstream

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 引擎生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 引擎未启动
	ErrNotStarted = errors.New("engine not started")

	// ErrAlreadyStarted 引擎已启动
	ErrAlreadyStarted = errors.New("engine already started")

	// ErrEngineClosed 引擎已关闭
	ErrEngineClosed = errors.New("engine closed")

	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNoTransferLayer 未提供传输层
	ErrNoTransferLayer = errors.New("transfer layer is required")

	// ErrInvalidOption 无效的选项参数
	ErrInvalidOption = errors.New("invalid option")
)
