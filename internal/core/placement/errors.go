package placement

import "errors"

var (
	// ErrLevelExists 关卡已存在
	ErrLevelExists = errors.New("placement: level already exists")

	// ErrOwnerExists 所有者已附加
	ErrOwnerExists = errors.New("placement: owner already attached")

	// ErrUnknownOwner 所有者未附加
	ErrUnknownOwner = errors.New("placement: unknown owner")

	// ErrInvalidInstance 放置信息无效
	ErrInvalidInstance = errors.New("placement: invalid instance")
)
