package budget

import (
	"github.com/dep2p/go-lodstream/pkg/types"
)

// transfer 进行中传输的字节
type transfer struct {
	from int64
	to   int64
}

// Tracker 进行中传输的字节记账
//
// 记账模型：发起时分配目标等级的完整字节，完成时释放原常驻字节。
// 因此进行中的传输在完成前占用 from + to，完成后释放 from。
type Tracker struct {
	inflight  map[types.ResourceID]transfer
	releasing int64
	pendingIn int64
}

// NewTracker 创建记账器
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[types.ResourceID]transfer)}
}

// Begin 记录一次发起的传输
func (t *Tracker) Begin(id types.ResourceID, fromBytes, toBytes int64) {
	if old, ok := t.inflight[id]; ok {
		t.remove(old)
	}
	tr := transfer{from: fromBytes, to: toBytes}
	t.inflight[id] = tr
	t.releasing += tr.from
	if tr.to > tr.from {
		t.pendingIn += tr.to - tr.from
	}
}

// End 传输完成或被取消
func (t *Tracker) End(id types.ResourceID) bool {
	tr, ok := t.inflight[id]
	if !ok {
		return false
	}
	delete(t.inflight, id)
	t.remove(tr)
	return true
}

func (t *Tracker) remove(tr transfer) {
	t.releasing -= tr.from
	if tr.to > tr.from {
		t.pendingIn -= tr.to - tr.from
	}
}

// Len 进行中的传输数
func (t *Tracker) Len() int {
	return len(t.inflight)
}

// Releasing 传输完成后将释放的字节
func (t *Tracker) Releasing() int64 {
	return t.releasing
}

// PendingIn 进行中的增长字节
func (t *Tracker) PendingIn() int64 {
	return t.pendingIn
}

// Temp 传输临时占用字节
func (t *Tracker) Temp() int64 {
	return t.releasing
}

// AvailableNow 当前可用字节（可为负）
func (t *Tracker) AvailableNow(pool types.PoolMemory, margin int64) int64 {
	adj := pool.PendingAdjustment
	if adj < 0 {
		adj = 0
	}
	return pool.Free - adj - margin
}

// AvailableLater 所有传输落定后的可用字节（可为负）
func (t *Tracker) AvailableLater(pool types.PoolMemory, margin int64) int64 {
	return pool.Free - pool.PendingAdjustment + t.releasing - margin
}

// Reset 清空记账
func (t *Tracker) Reset() {
	t.inflight = make(map[types.ResourceID]transfer)
	t.releasing = 0
	t.pendingIn = 0
}
