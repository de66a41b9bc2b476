package sim

import (
	"sort"
	"sync"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("sim")

// job 进行中的传输
type job struct {
	res    *Resource
	from   int
	target int
	seq    uint64

	// committed 已越过不可回退点
	committed bool
}

// Transfer 模拟传输层
//
// 发起时从池中分配目标等级的完整字节，完成时释放原常驻等级字节；
// 取消时释放目标等级字节并保持原常驻等级。
type Transfer struct {
	mu   sync.Mutex
	pool *Pool
	jobs map[types.ResourceID]*job
	seq  uint64

	begun     uint64
	rejected  uint64
	completed uint64
	cancelled uint64
}

var _ interfaces.TransferLayer = (*Transfer)(nil)

// NewTransfer 创建模拟传输层
func NewTransfer(pool *Pool) *Transfer {
	return &Transfer{
		pool: pool,
		jobs: make(map[types.ResourceID]*job),
	}
}

// RegisterResident 为初始常驻等级分配字节
func (t *Transfer) RegisterResident(res *Resource) bool {
	return t.pool.Alloc(res.ByteSize(res.ResidentLevel()))
}

// ReleaseResident 释放资源当前常驻字节
func (t *Transfer) ReleaseResident(res *Resource) {
	t.mu.Lock()
	if j, ok := t.jobs[res.id]; ok {
		delete(t.jobs, res.id)
		t.pool.Release(res.ByteSize(j.target))
	}
	t.mu.Unlock()
	t.pool.Release(res.ByteSize(res.ResidentLevel()))
}

// BeginLevelChange 发起等级变更
func (t *Transfer) BeginLevelChange(r interfaces.Resource, target int, _ bool) error {
	res, ok := r.(*Resource)
	if !ok {
		return ErrForeignResource
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, busy := t.jobs[res.id]; busy {
		t.rejected++
		return ErrBusy
	}
	if !t.pool.Alloc(res.ByteSize(target)) {
		t.rejected++
		return ErrOutOfMemory
	}
	t.seq++
	t.jobs[res.id] = &job{res: res, from: res.ResidentLevel(), target: target, seq: t.seq}
	t.begun++
	return nil
}

// CancelLevelChange 取消等级变更
func (t *Transfer) CancelLevelChange(r interfaces.Resource) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	j, ok := t.jobs[r.ID()]
	if !ok || j.committed {
		return false
	}
	delete(t.jobs, r.ID())
	t.pool.Release(j.res.ByteSize(j.target))
	t.cancelled++
	return true
}

// PollTransferStatus 查询传输状态
func (t *Transfer) PollTransferStatus(r interfaces.Resource) types.TransferStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.jobs[r.ID()]; ok {
		return types.TransferInFlight
	}
	return types.TransferIdle
}

// Commit 让进行中的传输越过不可回退点
func (t *Transfer) Commit(id types.ResourceID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	j, ok := t.jobs[id]
	if ok {
		j.committed = true
	}
	return ok
}

// Step 按发起顺序完成最多 n 个传输，返回完成数
func (t *Transfer) Step(n int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	jobs := make([]*job, 0, len(t.jobs))
	for _, j := range t.jobs {
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].seq < jobs[b].seq })

	done := 0
	for _, j := range jobs {
		if done >= n {
			break
		}
		t.complete(j)
		done++
	}
	return done
}

// CompleteAll 完成所有进行中的传输
func (t *Transfer) CompleteAll() int {
	return t.Step(int(^uint(0) >> 1))
}

// complete 提交传输，调用方持有锁
func (t *Transfer) complete(j *job) {
	delete(t.jobs, j.res.id)
	t.pool.Release(j.res.ByteSize(j.from))
	j.res.setResident(j.target)
	t.completed++
	logger.Debug("模拟传输完成", "resource", j.res.id, "from", j.from, "to", j.target)
}

// InFlight 返回进行中的传输数
func (t *Transfer) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// TransferCounts 模拟传输计数
type TransferCounts struct {
	Begun     uint64
	Rejected  uint64
	Completed uint64
	Cancelled uint64
}

// Counts 返回累计计数
func (t *Transfer) Counts() TransferCounts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TransferCounts{
		Begun:     t.begun,
		Rejected:  t.rejected,
		Completed: t.completed,
		Cancelled: t.cancelled,
	}
}
