package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lodstream/pkg/types"
	"github.com/dep2p/go-lodstream/tests/mocks"
)

var t0 = time.Unix(1_700_000_000, 0)

func newRes(id string, resident int) *mocks.MockResource {
	return mocks.NewMockResource(types.ResourceID(id), resident, 10, 20, 40, 80)
}

// ============================================================================
//                              注册
// ============================================================================

func TestRegistry_RegisterPendingUntilSync(t *testing.T) {
	r := New()
	e, err := r.Register(newRes("a", 2), t0)
	require.NoError(t, err)

	assert.Equal(t, -1, e.Index())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 1, r.PendingLen())

	added, removed := r.SyncPendingChanges()
	assert.Equal(t, 1, added)
	assert.Zero(t, removed)
	assert.Equal(t, 0, e.Index())
	assert.Same(t, e, r.At(0))
}

func TestRegistry_RegisterInitialState(t *testing.T) {
	r := New()
	res := newRes("a", 3)
	res.ClassValue = types.ClassCharacter
	e, err := r.Register(res, t0)
	require.NoError(t, err)

	assert.Equal(t, 3, e.Resident)
	assert.Equal(t, 3, e.Requested)
	assert.Equal(t, 3, e.Wanted)
	assert.Equal(t, 1, e.MinAllowed)
	assert.Equal(t, 4, e.MaxAllowed)
	assert.Equal(t, types.ClassCharacter, e.Class)
	assert.Equal(t, 1.0, e.Boost)
	assert.Equal(t, t0, e.LastUsed)
	assert.True(t, e.Ready)
	assert.False(t, e.InFlight)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := New()
	_, err := r.Register(newRes("a", 1), t0)
	require.NoError(t, err)

	_, err = r.Register(newRes("a", 1), t0)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := New()

	_, err := r.Register(nil, t0)
	assert.ErrorIs(t, err, ErrNilResource)

	_, err = r.Register(mocks.NewMockResource("", 1, 10), t0)
	assert.ErrorIs(t, err, types.ErrEmptyResourceID)

	_, err = r.Register(mocks.NewMockResource("none", 1), t0)
	assert.ErrorIs(t, err, types.ErrInvalidLevelCount)

	_, err = r.Register(mocks.NewMockResource("bad-resident", 5, 10, 20), t0)
	assert.ErrorIs(t, err, types.ErrInvalidResidentLevel)

	_, err = r.Register(mocks.NewMockResource("shrinking", 1, 10, 5), t0)
	assert.ErrorIs(t, err, types.ErrNonMonotonicSizes)

	assert.Zero(t, r.PendingLen())
}

// ============================================================================
//                              注销
// ============================================================================

func TestRegistry_UnregisterPending(t *testing.T) {
	r := New()
	e, _ := r.Register(newRes("a", 1), t0)

	assert.True(t, r.Unregister("a"))
	assert.True(t, e.Removed())
	assert.Zero(t, r.PendingLen())

	added, _ := r.SyncPendingChanges()
	assert.Zero(t, added)
	assert.False(t, r.Unregister("a"))
}

func TestRegistry_UnregisterMarksUntilSync(t *testing.T) {
	r := New()
	a, _ := r.Register(newRes("a", 1), t0)
	b, _ := r.Register(newRes("b", 1), t0)
	c, _ := r.Register(newRes("c", 1), t0)
	r.SyncPendingChanges()

	require.True(t, r.Unregister("a"))
	assert.Nil(t, a.Resource)
	assert.Nil(t, r.At(0), "已标记条目对扫描不可见")
	assert.Equal(t, 3, r.Len())

	_, removed := r.SyncPendingChanges()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, -1, a.Index())

	// 末尾条目移入空位
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 1, b.Index())
	assert.Same(t, c, r.At(0))
}

func TestRegistry_UnregisterLast(t *testing.T) {
	r := New()
	a, _ := r.Register(newRes("a", 1), t0)
	b, _ := r.Register(newRes("b", 1), t0)
	r.SyncPendingChanges()

	r.Unregister("b")
	r.SyncPendingChanges()

	assert.Equal(t, -1, b.Index())
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_UnregisterAll(t *testing.T) {
	r := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := r.Register(newRes(id, 1), t0)
		require.NoError(t, err)
	}
	r.SyncPendingChanges()

	for _, id := range []string{"a", "c", "d", "b"} {
		r.Unregister(types.ResourceID(id))
	}
	_, removed := r.SyncPendingChanges()
	assert.Equal(t, 4, removed)
	assert.Zero(t, r.Len())
}

func TestRegistry_IndicesStayDense(t *testing.T) {
	r := New()
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		r.Register(newRes(id, 1), t0)
	}
	r.SyncPendingChanges()
	r.Unregister("b")
	r.Unregister("d")
	r.Register(newRes("f", 1), t0)
	r.SyncPendingChanges()

	seen := 0
	r.Range(func(e *Entry) bool {
		assert.Same(t, e, r.At(e.Index()))
		seen++
		return true
	})
	assert.Equal(t, 4, seen)
	assert.Equal(t, 4, r.Len())
}

// ============================================================================
//                              查询
// ============================================================================

func TestRegistry_Lookup(t *testing.T) {
	r := New()
	e, _ := r.Register(newRes("a", 1), t0)

	got, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Same(t, e, got)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_AtOutOfRange(t *testing.T) {
	r := New()
	assert.Nil(t, r.At(-1))
	assert.Nil(t, r.At(0))
}

func TestRegistry_RangeStops(t *testing.T) {
	r := New()
	r.Register(newRes("a", 1), t0)
	r.Register(newRes("b", 1), t0)
	r.SyncPendingChanges()

	n := 0
	r.Range(func(*Entry) bool {
		n++
		return false
	})
	assert.Equal(t, 1, n)
}

// ============================================================================
//                              条目
// ============================================================================

func TestEntry_Size(t *testing.T) {
	r := New()
	e, _ := r.Register(newRes("a", 1), t0)

	assert.Zero(t, e.Size(0))
	assert.Zero(t, e.Size(-3))
	assert.Equal(t, int64(10), e.Size(1))
	assert.Equal(t, int64(80), e.Size(4))
	assert.Equal(t, int64(80), e.Size(9), "超出等级数时钳制")
	assert.Equal(t, []int64{0, 10, 20, 40, 80}, e.Sizes())
}

func TestEntry_Forced(t *testing.T) {
	r := New()
	e, _ := r.Register(newRes("a", 1), t0)
	assert.False(t, e.Forced(t0))

	e.ForceRefCount = 1
	assert.True(t, e.Forced(t0))

	e.ForceRefCount = 0
	e.ForceUntil = t0.Add(time.Second)
	assert.True(t, e.Forced(t0))
	assert.False(t, e.Forced(t0.Add(time.Second)))
}

func TestEntry_Report(t *testing.T) {
	r := New()
	e, _ := r.Register(newRes("a", 2), t0)
	r.SyncPendingChanges()
	e.Wanted = 4
	e.Heuristic = types.HeuristicStatic

	rep := e.Report()
	assert.Equal(t, types.ResourceID("a"), rep.ID)
	assert.Equal(t, 0, rep.Index)
	assert.Equal(t, int64(20), rep.ResidentBytes)
	assert.Equal(t, int64(80), rep.WantedBytes)
	assert.Equal(t, int64(80), rep.MaxBytes)
	assert.Equal(t, types.HeuristicStatic.String(), rep.Heuristic)
}

func TestRegistry_RangeAllIncludesPending(t *testing.T) {
	r := New()
	now := time.Unix(100, 0)
	_, err := r.Register(mocks.NewMockResource("a", 1, 10, 20), now)
	require.NoError(t, err)
	r.SyncPendingChanges()
	_, err = r.Register(mocks.NewMockResource("b", 1, 10, 20), now)
	require.NoError(t, err)
	_, err = r.Register(mocks.NewMockResource("c", 1, 10, 20), now)
	require.NoError(t, err)
	r.Unregister("c")

	var ids []types.ResourceID
	r.RangeAll(func(e *Entry) bool {
		ids = append(ids, e.ID())
		return true
	})
	assert.Equal(t, []types.ResourceID{"a", "b"}, ids)
	assert.Equal(t, 2, r.Count())
}
