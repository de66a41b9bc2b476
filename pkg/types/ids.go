package types

// ============================================================================
//                              ID 类型
// ============================================================================

// ResourceID 可流式资源的唯一标识
//
// 由外部资源层分配，在资源生命周期内保持不变。
type ResourceID string

// String 返回字符串表示
func (id ResourceID) String() string {
	return string(id)
}

// IsEmpty 检查是否为空
func (id ResourceID) IsEmpty() bool {
	return id == ""
}

// OwnerID 动态放置的所有者标识（移动/生成的对象）
type OwnerID string

// String 返回字符串表示
func (id OwnerID) String() string {
	return string(id)
}

// LevelID 静态放置分组标识（一个加载的场景关卡）
type LevelID string

// String 返回字符串表示
func (id LevelID) String() string {
	return string(id)
}
