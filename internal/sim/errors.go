package sim

import "errors"

var (
	// ErrOutOfMemory 池内存不足
	ErrOutOfMemory = errors.New("sim: pool out of memory")

	// ErrBusy 资源已有进行中的传输
	ErrBusy = errors.New("sim: transfer already in flight")

	// ErrForeignResource 不是由本包创建的资源
	ErrForeignResource = errors.New("sim: foreign resource")
)
