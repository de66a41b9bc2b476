package sim

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Resource 模拟资源
type Resource struct {
	id    types.ResourceID
	class types.ResourceClass
	sizes []int64

	mu       sync.Mutex
	resident int
	ready    bool
}

var _ interfaces.Resource = (*Resource)(nil)

// NewResource 创建资源，sizes 依次为等级 1..N 的字节数
//
// id 为空时生成随机 UUID。
func NewResource(id types.ResourceID, class types.ResourceClass, resident int, sizes ...int64) *Resource {
	if id.IsEmpty() {
		id = types.ResourceID(uuid.NewString())
	}
	return &Resource{
		id:       id,
		class:    class,
		sizes:    append([]int64(nil), sizes...),
		resident: resident,
		ready:    true,
	}
}

// ID 返回资源标识
func (r *Resource) ID() types.ResourceID { return r.id }

// LevelCount 返回等级数
func (r *Resource) LevelCount() int { return len(r.sizes) }

// Class 返回类别
func (r *Resource) Class() types.ResourceClass { return r.class }

// ByteSize 返回等级字节数
func (r *Resource) ByteSize(level int) int64 {
	if level < 1 || level > len(r.sizes) {
		return 0
	}
	return r.sizes[level-1]
}

// ResidentLevel 返回常驻等级
func (r *Resource) ResidentLevel() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resident
}

// ReadyForTransfer 是否可传输
func (r *Resource) ReadyForTransfer() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// SetReady 设置是否可传输
func (r *Resource) SetReady(ready bool) {
	r.mu.Lock()
	r.ready = ready
	r.mu.Unlock()
}

func (r *Resource) setResident(level int) {
	r.mu.Lock()
	r.resident = level
	r.mu.Unlock()
}
