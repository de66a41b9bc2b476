package placement

import (
	"fmt"
	"math"

	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("core/placement")

// Store 放置信息存储
type Store struct {
	levels map[types.LevelID][]types.StaticInstance
	owners map[types.OwnerID][]types.DynamicInstance

	// staticRefs 每个资源的静态放置数，归零即孤立
	staticRefs map[types.ResourceID]int

	staticSnap  map[types.ResourceID][]types.StaticInstance
	dynamicSnap map[types.ResourceID][]types.DynamicInstance
	snap        *Snapshot

	staticDirty  bool
	dynamicDirty bool
}

// NewStore 创建放置信息存储
func NewStore() *Store {
	return &Store{
		levels:     make(map[types.LevelID][]types.StaticInstance),
		owners:     make(map[types.OwnerID][]types.DynamicInstance),
		staticRefs: make(map[types.ResourceID]int),
		snap:       emptySnapshot,
	}
}

// ============================================================================
//                              静态放置
// ============================================================================

// AddLevel 添加一个关卡的静态放置
func (s *Store) AddLevel(id types.LevelID, instances []types.StaticInstance) error {
	if id == "" {
		return types.ErrEmptyLevelID
	}
	if _, ok := s.levels[id]; ok {
		return fmt.Errorf("%w: %s", ErrLevelExists, id)
	}
	for i, inst := range instances {
		if err := validStatic(inst); err != nil {
			return fmt.Errorf("%w: level %s instance %d", err, id, i)
		}
	}

	list := append([]types.StaticInstance(nil), instances...)
	s.levels[id] = list
	for _, inst := range list {
		s.staticRefs[inst.Resource]++
	}
	s.staticDirty = true

	logger.Debug("关卡已添加", "level", id, "instances", len(list))
	return nil
}

// RemoveLevel 移除关卡，返回因此失去全部静态放置的资源
func (s *Store) RemoveLevel(id types.LevelID) ([]types.ResourceID, bool) {
	list, ok := s.levels[id]
	if !ok {
		return nil, false
	}
	delete(s.levels, id)

	var orphaned []types.ResourceID
	for _, inst := range list {
		n := s.staticRefs[inst.Resource] - 1
		if n > 0 {
			s.staticRefs[inst.Resource] = n
			continue
		}
		if _, present := s.staticRefs[inst.Resource]; present {
			delete(s.staticRefs, inst.Resource)
			orphaned = append(orphaned, inst.Resource)
		}
	}
	s.staticDirty = true

	logger.Debug("关卡已移除", "level", id, "instances", len(list), "orphaned", len(orphaned))
	return orphaned, true
}

// HasStatic 资源当前是否有静态放置
func (s *Store) HasStatic(id types.ResourceID) bool {
	return s.staticRefs[id] > 0
}

// Levels 返回关卡数
func (s *Store) Levels() int {
	return len(s.levels)
}

// ============================================================================
//                              动态放置
// ============================================================================

// Attach 附加所有者的动态放置
func (s *Store) Attach(owner types.OwnerID, instances []types.DynamicInstance) error {
	if owner == "" {
		return types.ErrEmptyOwnerID
	}
	if _, ok := s.owners[owner]; ok {
		return fmt.Errorf("%w: %s", ErrOwnerExists, owner)
	}
	return s.setOwner(owner, instances)
}

// Update 替换所有者的动态放置
func (s *Store) Update(owner types.OwnerID, instances []types.DynamicInstance) error {
	if _, ok := s.owners[owner]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOwner, owner)
	}
	return s.setOwner(owner, instances)
}

// Detach 移除所有者的动态放置
func (s *Store) Detach(owner types.OwnerID) bool {
	if _, ok := s.owners[owner]; !ok {
		return false
	}
	delete(s.owners, owner)
	s.dynamicDirty = true
	return true
}

// OwnerResources 返回所有者引用的资源（去重）
func (s *Store) OwnerResources(owner types.OwnerID) []types.ResourceID {
	list, ok := s.owners[owner]
	if !ok {
		return nil
	}
	seen := make(map[types.ResourceID]struct{}, len(list))
	out := make([]types.ResourceID, 0, len(list))
	for _, inst := range list {
		if _, dup := seen[inst.Resource]; dup {
			continue
		}
		seen[inst.Resource] = struct{}{}
		out = append(out, inst.Resource)
	}
	return out
}

// Owners 返回所有者数
func (s *Store) Owners() int {
	return len(s.owners)
}

func (s *Store) setOwner(owner types.OwnerID, instances []types.DynamicInstance) error {
	for i, inst := range instances {
		if err := validDynamic(inst); err != nil {
			return fmt.Errorf("%w: owner %s instance %d", err, owner, i)
		}
	}
	s.owners[owner] = append([]types.DynamicInstance(nil), instances...)
	s.dynamicDirty = true
	return nil
}

// ============================================================================
//                              快照
// ============================================================================

// Snapshot 返回当前放置信息的不可变快照
func (s *Store) Snapshot() *Snapshot {
	if !s.staticDirty && !s.dynamicDirty {
		return s.snap
	}
	if s.staticDirty {
		static := make(map[types.ResourceID][]types.StaticInstance, len(s.staticRefs))
		for _, list := range s.levels {
			for _, inst := range list {
				static[inst.Resource] = append(static[inst.Resource], inst)
			}
		}
		s.staticSnap = static
		s.staticDirty = false
	}
	if s.dynamicDirty {
		dynamic := make(map[types.ResourceID][]types.DynamicInstance)
		for _, list := range s.owners {
			for _, inst := range list {
				// 半径为 0 的动态放置不参与计算
				if inst.Bounds.Radius <= 0 {
					continue
				}
				dynamic[inst.Resource] = append(dynamic[inst.Resource], inst)
			}
		}
		s.dynamicSnap = dynamic
		s.dynamicDirty = false
	}
	s.snap = &Snapshot{static: s.staticSnap, dynamic: s.dynamicSnap}
	return s.snap
}

func validStatic(inst types.StaticInstance) error {
	if inst.Resource.IsEmpty() {
		return types.ErrEmptyResourceID
	}
	if !finite(inst.Bounds.Radius) || inst.Bounds.Radius < 0 || !finite(inst.TexelFactor) {
		return ErrInvalidInstance
	}
	return nil
}

func validDynamic(inst types.DynamicInstance) error {
	if inst.Resource.IsEmpty() {
		return types.ErrEmptyResourceID
	}
	if !finite(inst.Bounds.Radius) || inst.Bounds.Radius < 0 || !finite(inst.TexelFactor) {
		return ErrInvalidInstance
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
