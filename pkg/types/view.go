package types

// ============================================================================
//                              ViewInfo - 视点
// ============================================================================

// ViewInfo 相机/视点采样
//
// Duration 为 0 表示仅本轮有效（pending）；大于 0 表示持续视点（lasting），
// 每轮按 deltaTime 递减，<= 0 时丢弃。
type ViewInfo struct {
	// Origin 视点世界坐标
	Origin Vector `json:"origin"`

	// ScreenSize 屏幕尺寸（像素）
	ScreenSize float64 `json:"screen_size"`

	// FOVScreenSize 经过视场角调整后的屏幕尺寸
	FOVScreenSize float64 `json:"fov_screen_size"`

	// Boost 视点放大系数
	Boost float64 `json:"boost"`

	// Override 独占视点（过场等），存在时排除所有非独占视点
	Override bool `json:"override"`

	// Duration 剩余持续时间（秒）
	Duration float64 `json:"duration"`
}

// Lasting 是否为持续视点
func (v ViewInfo) Lasting() bool {
	return v.Duration > 0
}
