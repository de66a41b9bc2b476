package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Dist(t *testing.T) {
	a := Vector{X: 1, Y: 2, Z: 3}
	b := Vector{X: 4, Y: 6, Z: 3}

	assert.Equal(t, 25.0, a.DistSquared(b))
	assert.Equal(t, 5.0, a.Dist(b))
	assert.Equal(t, Vector{X: -3, Y: -4}, a.Sub(b))
}

func TestVector_Near(t *testing.T) {
	a := Vector{X: 10, Y: 10, Z: 10}
	assert.True(t, a.Near(Vector{X: 10.4, Y: 9.6, Z: 10}, 0.5))
	assert.False(t, a.Near(Vector{X: 10.6, Y: 10, Z: 10}, 0.5))
}

func TestSphere_Contains(t *testing.T) {
	s := Sphere{Center: Vector{}, Radius: 2}
	assert.True(t, s.Contains(Vector{X: 1, Y: 1}))
	assert.False(t, s.Contains(Vector{X: 2, Y: 1}))
}

func TestPoolMemory_Size(t *testing.T) {
	p := PoolMemory{Supported: true, Allocated: 60, Free: 40}
	assert.Equal(t, int64(100), p.Size())
}

func TestViewInfo_Lasting(t *testing.T) {
	assert.False(t, ViewInfo{}.Lasting())
	assert.True(t, ViewInfo{Duration: 0.5}.Lasting())
}
