package streaming

import "errors"

var (
	// ErrClosed 管理器已关闭
	ErrClosed = errors.New("streaming: manager closed")

	// ErrNilTransferLayer 未提供传输层
	ErrNilTransferLayer = errors.New("streaming: nil transfer layer")

	// ErrUnknownResource 资源未注册
	ErrUnknownResource = errors.New("streaming: unknown resource")
)
