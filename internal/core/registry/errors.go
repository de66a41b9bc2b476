package registry

import "errors"

// 资源表错误定义
var (
	// ErrAlreadyRegistered 资源已注册
	ErrAlreadyRegistered = errors.New("registry: resource already registered")

	// ErrNilResource 资源为空
	ErrNilResource = errors.New("registry: nil resource")
)
