package placement

import "github.com/dep2p/go-lodstream/pkg/types"

// Snapshot 放置信息的不可变快照
//
// 按资源索引，计算角色只读访问。
type Snapshot struct {
	static  map[types.ResourceID][]types.StaticInstance
	dynamic map[types.ResourceID][]types.DynamicInstance
}

// emptySnapshot 无任何放置信息
var emptySnapshot = &Snapshot{}

// Static 返回资源的静态放置
func (s *Snapshot) Static(id types.ResourceID) []types.StaticInstance {
	if s == nil {
		return nil
	}
	return s.static[id]
}

// Dynamic 返回资源的动态放置
func (s *Snapshot) Dynamic(id types.ResourceID) []types.DynamicInstance {
	if s == nil {
		return nil
	}
	return s.dynamic[id]
}

// HasStatic 资源是否有静态放置
func (s *Snapshot) HasStatic(id types.ResourceID) bool {
	return len(s.Static(id)) > 0
}

// Counts 返回快照中静态与动态放置的总数
func (s *Snapshot) Counts() (static, dynamic int) {
	if s == nil {
		return 0, 0
	}
	for _, list := range s.static {
		static += len(list)
	}
	for _, list := range s.dynamic {
		dynamic += len(list)
	}
	return static, dynamic
}
