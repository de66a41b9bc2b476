package metrics

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ============================================================================
// RateMeter - 速率计算器
// ============================================================================

// rateBuckets 滑动窗口桶数（每桶 1 秒）
const rateBuckets = 60

// RateMeter 速率计算器（基于滑动窗口）
//
// 使用 60 个 1 秒桶计算最近 60 秒的平均速率。
type RateMeter struct {
	mu       sync.Mutex
	clock    clock.Clock
	buckets  [rateBuckets]int64
	lastIdx  int
	lastTime time.Time
	total    int64
}

// NewRateMeter 创建速率计算器
func NewRateMeter(clk clock.Clock) *RateMeter {
	if clk == nil {
		clk = clock.New()
	}
	return &RateMeter{
		clock:    clk,
		lastTime: clk.Now(),
	}
}

// Add 累加到当前桶
func (r *RateMeter) Add(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance()
	r.buckets[r.lastIdx] += n
	r.total += n
}

// Rate 返回窗口内的平均速率（每秒）
func (r *RateMeter) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.advance()
	var sum int64
	for _, v := range r.buckets {
		sum += v
	}
	return float64(sum) / rateBuckets
}

// Total 返回累计总量
func (r *RateMeter) Total() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Reset 重置速率计算器
func (r *RateMeter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets = [rateBuckets]int64{}
	r.lastIdx = 0
	r.lastTime = r.clock.Now()
	r.total = 0
}

// advance 按经过的整秒数移动桶，调用方持有锁
func (r *RateMeter) advance() {
	elapsed := r.clock.Since(r.lastTime)
	if elapsed < time.Second {
		return
	}
	seconds := int(elapsed / time.Second)
	if seconds >= rateBuckets {
		// 超过窗口没有数据
		r.buckets = [rateBuckets]int64{}
		r.lastIdx = 0
	} else {
		for i := 0; i < seconds; i++ {
			r.lastIdx = (r.lastIdx + 1) % rateBuckets
			r.buckets[r.lastIdx] = 0
		}
	}
	r.lastTime = r.lastTime.Add(time.Duration(seconds) * time.Second)
}
