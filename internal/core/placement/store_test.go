package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lodstream/pkg/types"
)

func static(id string, x, r float64) types.StaticInstance {
	return types.StaticInstance{
		Resource:    types.ResourceID(id),
		Bounds:      types.Sphere{Center: types.Vector{X: x}, Radius: r},
		TexelFactor: 100,
	}
}

func dynamic(id string, x, r float64) types.DynamicInstance {
	return types.DynamicInstance{
		Resource:    types.ResourceID(id),
		Bounds:      types.Sphere{Center: types.Vector{X: x}, Radius: r},
		TexelFactor: 100,
	}
}

// ============================================================================
//                              静态放置
// ============================================================================

func TestStore_AddLevel(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLevel("l1", []types.StaticInstance{static("a", 0, 1), static("b", 5, 1)}))

	assert.True(t, s.HasStatic("a"))
	assert.True(t, s.HasStatic("b"))
	assert.False(t, s.HasStatic("c"))
	assert.Equal(t, 1, s.Levels())

	err := s.AddLevel("l1", nil)
	assert.ErrorIs(t, err, ErrLevelExists)

	err = s.AddLevel("", nil)
	assert.ErrorIs(t, err, types.ErrEmptyLevelID)
}

func TestStore_AddLevelInvalid(t *testing.T) {
	s := NewStore()

	err := s.AddLevel("l1", []types.StaticInstance{static("", 0, 1)})
	assert.ErrorIs(t, err, types.ErrEmptyResourceID)

	err = s.AddLevel("l2", []types.StaticInstance{static("a", 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidInstance)

	err = s.AddLevel("l3", []types.StaticInstance{static("a", 0, math.NaN())})
	assert.ErrorIs(t, err, ErrInvalidInstance)

	assert.Zero(t, s.Levels())
	assert.False(t, s.HasStatic("a"))
}

func TestStore_RemoveLevelOrphans(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLevel("l1", []types.StaticInstance{static("a", 0, 1), static("b", 5, 1), static("b", 9, 1)}))
	require.NoError(t, s.AddLevel("l2", []types.StaticInstance{static("a", 20, 1)}))

	orphaned, ok := s.RemoveLevel("l1")
	require.True(t, ok)
	assert.Equal(t, []types.ResourceID{"b"}, orphaned, "a 仍被 l2 引用")
	assert.True(t, s.HasStatic("a"))
	assert.False(t, s.HasStatic("b"))

	orphaned, ok = s.RemoveLevel("l2")
	require.True(t, ok)
	assert.Equal(t, []types.ResourceID{"a"}, orphaned)

	_, ok = s.RemoveLevel("l2")
	assert.False(t, ok)
}

// ============================================================================
//                              动态放置
// ============================================================================

func TestStore_AttachUpdateDetach(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Attach("p1", []types.DynamicInstance{dynamic("a", 0, 1)}))
	assert.ErrorIs(t, s.Attach("p1", nil), ErrOwnerExists)
	assert.ErrorIs(t, s.Attach("", nil), types.ErrEmptyOwnerID)

	require.NoError(t, s.Update("p1", []types.DynamicInstance{dynamic("b", 0, 1), dynamic("b", 3, 1), dynamic("c", 0, 1)}))
	assert.Equal(t, []types.ResourceID{"b", "c"}, s.OwnerResources("p1"))

	assert.ErrorIs(t, s.Update("p2", nil), ErrUnknownOwner)

	assert.True(t, s.Detach("p1"))
	assert.False(t, s.Detach("p1"))
	assert.Nil(t, s.OwnerResources("p1"))
	assert.Zero(t, s.Owners())
}

// ============================================================================
//                              快照
// ============================================================================

func TestStore_SnapshotGroupsByResource(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLevel("l1", []types.StaticInstance{static("a", 0, 1), static("a", 10, 1)}))
	require.NoError(t, s.Attach("p1", []types.DynamicInstance{dynamic("a", 0, 2), dynamic("b", 0, 0)}))

	snap := s.Snapshot()
	assert.Len(t, snap.Static("a"), 2)
	assert.Len(t, snap.Dynamic("a"), 1)
	assert.Empty(t, snap.Dynamic("b"), "零半径的动态放置被忽略")

	st, dyn := snap.Counts()
	assert.Equal(t, 2, st)
	assert.Equal(t, 1, dyn)
}

func TestStore_SnapshotReusedUntilChanged(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddLevel("l1", []types.StaticInstance{static("a", 0, 1)}))

	first := s.Snapshot()
	assert.Same(t, first, s.Snapshot())

	require.NoError(t, s.AddLevel("l2", []types.StaticInstance{static("b", 0, 1)}))
	second := s.Snapshot()
	assert.NotSame(t, first, second)

	// 旧快照不受影响
	assert.False(t, first.HasStatic("b"))
	assert.True(t, second.HasStatic("b"))
}

func TestSnapshot_Nil(t *testing.T) {
	var snap *Snapshot
	assert.Nil(t, snap.Static("a"))
	assert.Nil(t, snap.Dynamic("a"))
	assert.False(t, snap.HasStatic("a"))

	st, dyn := snap.Counts()
	assert.Zero(t, st)
	assert.Zero(t, dyn)
}
