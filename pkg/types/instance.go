package types

// ============================================================================
//                              放置信息
// ============================================================================

// StaticInstance 静态放置：资源被关卡几何引用
type StaticInstance struct {
	// Resource 被引用的资源
	Resource ResourceID `json:"resource"`

	// Bounds 包围球
	Bounds Sphere `json:"bounds"`

	// TexelFactor 纹素密度系数（世界单位到纹素）
	TexelFactor float64 `json:"texel_factor"`
}

// DynamicInstance 动态放置：资源被移动/生成的对象引用
type DynamicInstance struct {
	// Resource 被引用的资源
	Resource ResourceID `json:"resource"`

	// Bounds 包围球（半径为 0 时不参与计算）
	Bounds Sphere `json:"bounds"`

	// TexelFactor 纹素密度系数
	TexelFactor float64 `json:"texel_factor"`
}
