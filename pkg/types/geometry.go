package types

import "math"

// ============================================================================
//                              Vector - 三维向量
// ============================================================================

// Vector 世界空间中的三维坐标
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sub 返回 v - o
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// DistSquared 返回两点之间距离的平方
func (v Vector) DistSquared(o Vector) float64 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Dist 返回两点之间的距离
func (v Vector) Dist(o Vector) float64 {
	return math.Sqrt(v.DistSquared(o))
}

// Near 判断两点是否在 epsilon 范围内（逐分量比较）
func (v Vector) Near(o Vector, epsilon float64) bool {
	return math.Abs(v.X-o.X) <= epsilon &&
		math.Abs(v.Y-o.Y) <= epsilon &&
		math.Abs(v.Z-o.Z) <= epsilon
}

// ============================================================================
//                              Sphere - 包围球
// ============================================================================

// Sphere 包围球
type Sphere struct {
	Center Vector  `json:"center" yaml:"center"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Contains 判断点是否在球内
func (s Sphere) Contains(p Vector) bool {
	return s.Center.DistSquared(p) <= s.Radius*s.Radius
}
