package mocks

import (
	"sync"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// MockResource 模拟 Resource 接口实现
type MockResource struct {
	mu sync.Mutex

	// 基本属性
	IDValue    types.ResourceID
	SizesValue []int64 // SizesValue[i] 为等级 i+1 的字节数
	Resident   int
	ClassValue types.ResourceClass
	NotReady   bool

	// 可覆盖的方法
	ByteSizeFunc func(level int) int64
	ReadyFunc    func() bool
}

// NewMockResource 创建 MockResource
//
// sizes 依次为等级 1..N 的字节数。
func NewMockResource(id types.ResourceID, resident int, sizes ...int64) *MockResource {
	return &MockResource{
		IDValue:    id,
		SizesValue: sizes,
		Resident:   resident,
	}
}

// ID 返回资源标识
func (m *MockResource) ID() types.ResourceID {
	return m.IDValue
}

// LevelCount 返回等级数
func (m *MockResource) LevelCount() int {
	return len(m.SizesValue)
}

// ByteSize 返回等级字节数
func (m *MockResource) ByteSize(level int) int64 {
	if m.ByteSizeFunc != nil {
		return m.ByteSizeFunc(level)
	}
	if level < 1 || level > len(m.SizesValue) {
		return 0
	}
	return m.SizesValue[level-1]
}

// ResidentLevel 返回常驻等级
func (m *MockResource) ResidentLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Resident
}

// SetResident 设置常驻等级
func (m *MockResource) SetResident(level int) {
	m.mu.Lock()
	m.Resident = level
	m.mu.Unlock()
}

// Class 返回类别
func (m *MockResource) Class() types.ResourceClass {
	return m.ClassValue
}

// ReadyForTransfer 是否可传输
func (m *MockResource) ReadyForTransfer() bool {
	if m.ReadyFunc != nil {
		return m.ReadyFunc()
	}
	return !m.NotReady
}
