package scheduler

import (
	"math"
	"time"
)

// Priority 计算优先级
//
// 期望等级越高、距离越近、最近越常被使用，优先级越高；强制常驻获得额外加成。
func (c *Config) Priority(wanted int, distance float64, sinceUsed time.Duration, forced bool) float64 {
	ref := c.MaxLevelCountRef
	if ref <= 0 {
		ref = 1
	}
	maxDist := c.MaxDistance
	if maxDist < 1 {
		maxDist = 1
	}
	maxSince := c.MaxSinceUsed
	if maxSince < time.Second {
		maxSince = time.Second
	}

	dist := clampFloat(distance, 1, maxDist)
	since := sinceUsed
	if since < time.Second {
		since = time.Second
	}
	if since > maxSince {
		since = maxSince
	}

	distanceFactor := 1 - math.Sqrt(dist/maxDist)
	timeFactor := 1 - c.TimeWeight*float64(since)/float64(maxSince)

	p := c.LevelWeight*float64(wanted)/float64(ref) + c.DistanceWeight*distanceFactor*timeFactor
	if forced {
		p += c.ForcedBonus
	}
	return p
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
