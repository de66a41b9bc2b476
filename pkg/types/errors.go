// Package types 定义 go-lodstream 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              资源相关错误
// ============================================================================

var (
	// ErrEmptyResourceID 空资源 ID
	ErrEmptyResourceID = errors.New("empty resource ID")

	// ErrInvalidLevelCount 等级数无效
	ErrInvalidLevelCount = errors.New("invalid level count: must be at least 1")

	// ErrInvalidResidentLevel 常驻等级越界
	ErrInvalidResidentLevel = errors.New("invalid resident level")

	// ErrNonMonotonicSizes 字节大小表不是单调递增
	ErrNonMonotonicSizes = errors.New("byte sizes must be monotonic in level")
)

// ============================================================================
//                              放置相关错误
// ============================================================================

var (
	// ErrEmptyLevelID 空关卡 ID
	ErrEmptyLevelID = errors.New("empty level ID")

	// ErrEmptyOwnerID 空所有者 ID
	ErrEmptyOwnerID = errors.New("empty owner ID")
)
