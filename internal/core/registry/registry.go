package registry

import (
	"time"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/registry")

// Registry 被跟踪资源表
type Registry struct {
	entries []*Entry
	pending []*Entry
	byID    map[types.ResourceID]*Entry
}

// New 创建资源表
func New() *Registry {
	return &Registry{
		byID: make(map[types.ResourceID]*Entry),
	}
}

// ============================================================================
//                              注册与注销
// ============================================================================

// Register 注册资源
//
// 条目进入待插入队列，在下一次 SyncPendingChanges 之前对扫描不可见。
func (r *Registry) Register(res interfaces.Resource, now time.Time) (*Entry, error) {
	e, err := newEntry(res, now)
	if err != nil {
		return nil, err
	}
	if _, ok := r.byID[e.id]; ok {
		return nil, ErrAlreadyRegistered
	}
	r.pending = append(r.pending, e)
	r.byID[e.id] = e

	logger.Debug("资源已排队注册", "resource", e.id, "levels", e.LevelCount, "resident", e.Resident)
	return e, nil
}

// Unregister 注销资源
//
// 已同步的条目只做标记，Resource 置为 nil；尚未同步的条目直接从队列移除。
func (r *Registry) Unregister(id types.ResourceID) bool {
	e, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)

	if e.index < 0 {
		for i, p := range r.pending {
			if p == e {
				r.pending = append(r.pending[:i], r.pending[i+1:]...)
				break
			}
		}
		e.removed = true
		e.Resource = nil
		return true
	}

	e.removed = true
	e.Resource = nil
	logger.Debug("资源已标记注销", "resource", id, "index", e.index)
	return true
}

// SyncPendingChanges 应用排队的插入与删除
//
// 这是唯一会改变索引的地方。
func (r *Registry) SyncPendingChanges() (added, removed int) {
	for i := 0; i < len(r.entries); {
		if !r.entries[i].removed {
			i++
			continue
		}
		gone := r.entries[i]
		last := len(r.entries) - 1
		r.entries[i] = r.entries[last]
		r.entries[i].index = i
		r.entries[last] = nil
		r.entries = r.entries[:last]
		gone.index = -1
		removed++
	}

	for _, e := range r.pending {
		e.index = len(r.entries)
		r.entries = append(r.entries, e)
		added++
	}
	r.pending = r.pending[:0]

	if added > 0 || removed > 0 {
		logger.Debug("资源表已同步", "added", added, "removed", removed, "total", len(r.entries))
	}
	return added, removed
}

// ============================================================================
//                              查询
// ============================================================================

// Len 返回已同步条目数（含已标记注销的）
func (r *Registry) Len() int {
	return len(r.entries)
}

// PendingLen 返回待插入条目数
func (r *Registry) PendingLen() int {
	return len(r.pending)
}

// At 返回索引处的存活条目，越界或已注销时返回 nil
func (r *Registry) At(i int) *Entry {
	if i < 0 || i >= len(r.entries) {
		return nil
	}
	e := r.entries[i]
	if e.removed {
		return nil
	}
	return e
}

// Lookup 按 ID 查找条目（含尚未同步的）
func (r *Registry) Lookup(id types.ResourceID) (*Entry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Range 遍历所有已同步的存活条目，fn 返回 false 时停止
func (r *Registry) Range(fn func(e *Entry) bool) {
	for _, e := range r.entries {
		if e.removed {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// RangeAll 遍历所有存活条目（含尚未同步的），fn 返回 false 时停止
func (r *Registry) RangeAll(fn func(e *Entry) bool) {
	for _, e := range r.entries {
		if !e.removed && !fn(e) {
			return
		}
	}
	for _, e := range r.pending {
		if !fn(e) {
			return
		}
	}
}

// Count 返回存活条目数（含尚未同步的）
func (r *Registry) Count() int {
	return len(r.byID)
}
