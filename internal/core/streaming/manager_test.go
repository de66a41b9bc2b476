package streaming

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/eventbus"
	"github.com/dep2p/go-lodstream/internal/sim"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
	"github.com/dep2p/go-lodstream/tests/mocks"
)

// testConfig 测试配置：无安全余量，阈值不触发，不节流
func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Budget = cfg.Budget.
		WithMemoryMargin(0).
		WithMaxTempMemory(1<<20).
		WithLimits(-1000, -1000, -1000, -1000)
	cfg.Budget.MinEvictBytes = 0
	cfg.Budget.MinRequestLevels = 0
	cfg.Throttle = cfg.Throttle.WithCollectStages(1)
	cfg.Throttle.MaxPerFrameRequestBytes = 1 << 30
	cfg.Throttle.MaxPerFrameRequests = 0
	return cfg
}

var sizes = []int64{10, 20, 40, 80}

type fixture struct {
	clk  *clock.Mock
	pool *sim.Pool
	tr   *sim.Transfer
	m    *Manager
}

// newFixture 创建测试环境；limited 为 false 时以无限池模式运行
func newFixture(t *testing.T, cfg *config.Config, capacity int64, limited bool, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{clk: clock.NewMock()}
	f.pool = sim.NewPool(capacity)
	f.tr = sim.NewTransfer(f.pool)

	opts = append([]Option{WithClock(f.clk)}, opts...)
	var pool interfaces.MemoryPool
	if limited {
		pool = f.pool
	}
	m, err := New(cfg, f.tr, pool, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	f.m = m
	return f
}

func (f *fixture) add(t *testing.T, id types.ResourceID, class types.ResourceClass, resident int) *sim.Resource {
	t.Helper()
	res := sim.NewResource(id, class, resident, sizes...)
	require.True(t, f.tr.RegisterResident(res))
	require.NoError(t, f.m.RegisterResource(res))
	return res
}

func (f *fixture) tick(t *testing.T, exhaustive bool) {
	t.Helper()
	require.NoError(t, f.m.Tick(context.Background(), 0.016, exhaustive))
}

func (f *fixture) report(t *testing.T, id types.ResourceID) types.ResourceReport {
	t.Helper()
	r, ok := f.m.Inspect(id)
	require.True(t, ok, "资源 %s 应已注册", id)
	return r
}

func staticAt(id types.ResourceID, x float64) types.StaticInstance {
	return types.StaticInstance{
		Resource:    id,
		Bounds:      types.Sphere{Center: types.Vector{X: x}, Radius: 1},
		TexelFactor: 100,
	}
}

// ============================================================================
//                              创建
// ============================================================================

func TestNew_Requirements(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilTransferLayer)

	bad := config.NewConfig()
	bad.Throttle.CollectStages = 0
	_, err = New(bad, sim.NewTransfer(sim.NewPool(1)), nil)
	assert.Error(t, err)

	m, err := New(nil, sim.NewTransfer(sim.NewPool(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig().Budget, m.Config().Budget)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "重复关闭是安全的")
}

// ============================================================================
//                              预算安全
// ============================================================================

// TestManager_ShrinkBeforeGrow 池只有 100 字节：先收缩 Y，X 在下一轮才增长
func TestManager_ShrinkBeforeGrow(t *testing.T) {
	f := newFixture(t, testConfig(), 100, true)
	f.add(t, "x", types.ClassWorld, 1)
	f.add(t, "y", types.ClassWorld, 4)
	require.Equal(t, int64(90), f.pool.Allocated())

	f.clk.Add(200 * time.Second)
	require.True(t, f.m.Pin("x"))

	// 第一轮：只发起 Y 的收缩
	f.tick(t, false)
	x, y := f.report(t, "x"), f.report(t, "y")
	assert.Equal(t, 4, x.Wanted)
	assert.Equal(t, "forced", x.Heuristic)
	assert.False(t, x.InFlight, "X 的增长此时放不下")
	assert.Equal(t, 1, y.Wanted)
	assert.True(t, y.InFlight)
	assert.Equal(t, 1, y.Requested)

	f.tr.CompleteAll()

	// 第二轮：Y 已落定，X 可以增长
	f.tick(t, false)
	x = f.report(t, "x")
	assert.True(t, x.InFlight)
	assert.Equal(t, 4, x.Requested)
	assert.Equal(t, 1, f.report(t, "y").Resident)

	f.tr.CompleteAll()
	f.tick(t, false)

	assert.Equal(t, 4, f.report(t, "x").Resident)
	assert.LessOrEqual(t, f.pool.Peak(), int64(100), "池占用从未超过容量")
	assert.Zero(t, f.tr.Counts().Rejected)
	assert.Zero(t, f.m.Stats().Issued, "落定后不再发起")
}

func TestManager_PriorityOrder(t *testing.T) {
	f := newFixture(t, testConfig(), 100, true)
	f.add(t, "near", types.ClassWorld, 1)
	f.add(t, "far", types.ClassWorld, 1)
	require.NoError(t, f.m.AddLevel("L1", []types.StaticInstance{
		staticAt("near", 10),
		staticAt("far", 1000),
	}))

	f.m.SubmitView(types.Vector{}, 1000, 1000, 1, false, 0)
	f.tick(t, true)

	near, far := f.report(t, "near"), f.report(t, "far")
	assert.Equal(t, "static", near.Heuristic)
	assert.Equal(t, 4, near.Wanted)
	assert.Equal(t, 4, far.Wanted)
	assert.Greater(t, near.Priority, far.Priority)

	assert.True(t, near.InFlight, "近处资源先获得预算")
	assert.False(t, far.InFlight)
	assert.Equal(t, uint64(1), f.tr.Counts().Begun)
	assert.LessOrEqual(t, f.pool.Peak(), int64(100))
}

func TestManager_BudgetSafetyAcrossPasses(t *testing.T) {
	for _, margin := range []int64{0, 20} {
		cfg := testConfig()
		cfg.Budget = cfg.Budget.WithMemoryMargin(margin)
		const capacity = 300
		f := newFixture(t, cfg, capacity, true)

		var placements []types.StaticInstance
		for i := 0; i < 12; i++ {
			id := types.ResourceID(fmt.Sprintf("r%02d", i))
			f.add(t, id, types.ClassWorld, 1)
			placements = append(placements, staticAt(id, float64(i*100)))
		}
		require.NoError(t, f.m.AddLevel("L1", placements))

		rng := rand.New(rand.NewSource(1))
		for pass := 0; pass < 300; pass++ {
			f.m.SubmitView(types.Vector{X: float64((pass * 7) % 1200)}, 1000, 1000, 1, false, 0)
			f.clk.Add(time.Second)
			f.tick(t, false)

			var projected int64
			for _, r := range f.m.Resources() {
				level := r.Resident
				if r.InFlight {
					level = r.Requested
				}
				projected += sizes[level-1]
			}
			require.LessOrEqual(t, projected, capacity-margin, "margin %d 第 %d 轮", margin, pass)

			if rng.Intn(2) == 0 {
				f.tr.CompleteAll()
			}
		}

		counts := f.tr.Counts()
		assert.NotZero(t, counts.Begun)
		assert.Zero(t, counts.Rejected)
		assert.LessOrEqual(t, f.pool.Peak(), int64(capacity))
	}
}

func TestManager_NoDoubleTransfer(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, true)
	f.add(t, "a", types.ClassWorld, 1)

	for i := 0; i < 5; i++ {
		f.tick(t, i%2 == 0)
	}

	counts := f.tr.Counts()
	assert.Equal(t, uint64(1), counts.Begun, "进行中的资源不会再次发起")
	assert.Zero(t, counts.Rejected)
	assert.True(t, f.report(t, "a").InFlight)
}

// ============================================================================
//                              启发式
// ============================================================================

func TestManager_NoViewsDecaysToMin(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 3)

	f.clk.Add(200 * time.Second)
	f.tick(t, true)

	r := f.report(t, "a")
	assert.Equal(t, r.MinAllowed, r.Wanted)
	assert.Equal(t, 1, r.Wanted)
	assert.Equal(t, "last-used", r.Heuristic)
	assert.True(t, r.InFlight)
	assert.Equal(t, 1, r.Requested)
}

func TestManager_PinnedWantsMax(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 1)
	f.clk.Add(200 * time.Second)

	require.True(t, f.m.Pin("a"))
	f.tick(t, true)
	r := f.report(t, "a")
	assert.Equal(t, r.MaxAllowed, r.Wanted)
	assert.Equal(t, "forced", r.Heuristic)
	assert.Equal(t, 1, r.ForceRefCount)

	require.True(t, f.m.Unpin("a"))
	assert.False(t, f.m.Unpin("a"), "引用计数已为 0")
	assert.False(t, f.m.Pin("missing"))
}

func TestManager_ForceResidentFor(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 1)
	f.clk.Add(200 * time.Second)

	assert.False(t, f.m.ForceResidentFor("a", 0))
	require.True(t, f.m.ForceResidentFor("a", 10*time.Second))
	f.tick(t, true)
	assert.Equal(t, 4, f.report(t, "a").Wanted)
	f.tr.CompleteAll()

	f.m.CancelForcedResources()
	f.tick(t, true)
	r := f.report(t, "a")
	assert.True(t, r.ForceUntil.IsZero())
	assert.Equal(t, 1, r.Wanted)
}

func TestManager_OrphanDecay(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "o", types.ClassWorld, 4)
	require.NoError(t, f.m.AddLevel("L1", []types.StaticInstance{staticAt("o", 50)}))
	require.True(t, f.m.RemoveLevel("L1"))
	assert.False(t, f.m.RemoveLevel("L1"))

	// 宽限期内每轮只降一级
	for _, want := range []int{3, 2, 1} {
		f.tick(t, true)
		r := f.report(t, "o")
		assert.Equal(t, "orphaned", r.Heuristic, "等级 %d", want)
		assert.False(t, r.OrphanedAt.IsZero())
		assert.Equal(t, want, r.Wanted)
		assert.Equal(t, want+1, r.Resident)
		assert.True(t, r.InFlight)
		assert.Equal(t, want, r.Requested)
		f.tr.CompleteAll()
		f.clk.Add(10 * time.Second)
	}

	// 到达最低等级后仍在宽限期内，不会回升
	f.tick(t, true)
	r := f.report(t, "o")
	assert.Equal(t, "orphaned", r.Heuristic)
	assert.Equal(t, 1, r.Resident)
	assert.Equal(t, 1, r.Wanted)
	assert.False(t, r.InFlight)

	// 超过宽限期后重新由 LastUsed 决定
	f.clk.Add(92 * time.Second)
	require.True(t, f.m.Touch("o"))
	f.tick(t, true)
	r = f.report(t, "o")
	assert.Equal(t, "last-used", r.Heuristic)
	assert.Equal(t, 4, r.Wanted)
}

func TestManager_AddLevelClearsOrphan(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "o", types.ClassWorld, 2)
	require.NoError(t, f.m.AddLevel("L1", []types.StaticInstance{staticAt("o", 50)}))
	require.True(t, f.m.RemoveLevel("L1"))
	require.False(t, f.report(t, "o").OrphanedAt.IsZero())

	require.NoError(t, f.m.AddLevel("L2", []types.StaticInstance{staticAt("o", 50)}))
	assert.True(t, f.report(t, "o").OrphanedAt.IsZero())
}

func TestManager_BoostOwner(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassCharacter, 1)

	assert.False(t, f.m.BoostOwner("nobody", 2))
	require.NoError(t, f.m.AttachDynamic("player", []types.DynamicInstance{{
		Resource:    "a",
		Bounds:      types.Sphere{Center: types.Vector{X: 5000}, Radius: 1},
		TexelFactor: 1,
	}}))
	require.True(t, f.m.BoostOwner("player", 0))
	assert.Equal(t, 3.0, f.report(t, "a").Boost, "factor <= 0 使用默认放大系数")

	// 放大系数在本轮使用后重置
	f.tick(t, true)
	assert.Equal(t, 1.0, f.report(t, "a").Boost)

	assert.False(t, f.m.Boost("a", 0))
	require.True(t, f.m.Boost("a", 2))
	require.True(t, f.m.Boost("a", 1.5))
	assert.Equal(t, 2.0, f.report(t, "a").Boost, "取较大值")

	require.NoError(t, f.m.UpdateDynamic("player", nil))
	assert.True(t, f.m.DetachDynamic("player"))
	assert.False(t, f.m.DetachDynamic("player"))
}

// ============================================================================
//                              轮次驱动
// ============================================================================

func TestManager_Idempotent(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	for _, id := range []types.ResourceID{"a", "b", "c"} {
		f.add(t, id, types.ClassWorld, 1)
	}

	f.tick(t, true)
	assert.Equal(t, uint64(3), f.tr.Counts().Begun)
	f.tr.CompleteAll()

	f.tick(t, true)
	f.tick(t, true)
	assert.Equal(t, uint64(3), f.tr.Counts().Begun, "落定后不再发起任何请求")
	assert.Zero(t, f.m.Stats().Issued)
	for _, id := range []types.ResourceID{"a", "b", "c"} {
		assert.Equal(t, 4, f.report(t, id).Resident)
	}
}

func TestManager_IncrementalStages(t *testing.T) {
	cfg := testConfig()
	cfg.Throttle = cfg.Throttle.WithCollectStages(4)
	f := newFixture(t, cfg, 1<<20, false)
	for _, id := range []types.ResourceID{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7"} {
		f.add(t, id, types.ClassWorld, 4)
	}

	for _, want := range []int{2, 4, 6} {
		f.tick(t, false)
		c := f.m.Cursor()
		assert.Equal(t, StageCollect, c.Stage)
		assert.Equal(t, want, c.Index)
	}
	assert.Zero(t, f.m.Pass())

	f.tick(t, false)
	assert.Equal(t, StageApply, f.m.Cursor().Stage, "采集完成后派发调度任务")

	f.tick(t, false)
	assert.Equal(t, Cursor{Stage: StageCollect}, f.m.Cursor())
	assert.Equal(t, uint64(1), f.m.Pass())
	assert.Equal(t, 8, f.m.Stats().Tracked)
}

func TestManager_ExhaustiveAbortsPendingPass(t *testing.T) {
	cfg := testConfig()
	cfg.Throttle = cfg.Throttle.WithCollectStages(4)
	f := newFixture(t, cfg, 1<<20, false)
	for _, id := range []types.ResourceID{"r0", "r1", "r2", "r3"} {
		f.add(t, id, types.ClassWorld, 4)
	}

	f.tick(t, false)
	require.Equal(t, 1, f.m.Cursor().Index)

	f.tick(t, true)
	assert.Equal(t, uint64(1), f.m.Pass())
	assert.Equal(t, Cursor{Stage: StageCollect}, f.m.Cursor())
}

func TestManager_RegistrationVisibleNextPass(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 4)
	f.tick(t, true)
	assert.Equal(t, 1, f.m.Stats().Tracked)

	f.add(t, "b", types.ClassWorld, 4)
	_, ok := f.m.Inspect("b")
	assert.True(t, ok, "待同步条目可以查询")
	f.tick(t, true)
	assert.Equal(t, 2, f.m.Stats().Tracked)

	require.True(t, f.m.UnregisterResource("a"))
	assert.False(t, f.m.UnregisterResource("a"))
	_, ok = f.m.Inspect("a")
	assert.False(t, ok)
	f.tick(t, true)
	assert.Equal(t, 1, f.m.Stats().Tracked)
}

func TestManager_PausedAndClosed(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 1)

	f.m.SetPaused(true)
	f.tick(t, true)
	assert.Zero(t, f.m.Pass())
	assert.Zero(t, f.tr.Counts().Begun)

	f.m.SetPaused(false)
	f.tick(t, true)
	assert.Equal(t, uint64(1), f.m.Pass())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.m.Tick(ctx, 0.016, false), context.Canceled)

	require.NoError(t, f.m.Close())
	assert.ErrorIs(t, f.m.Tick(context.Background(), 0.016, false), ErrClosed)
	assert.ErrorIs(t, f.m.RegisterResource(sim.NewResource("z", types.ClassWorld, 1, 1)), ErrClosed)
}

// ============================================================================
//                              关卡切换
// ============================================================================

func TestManager_DisregardWorldResources(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "hero", types.ClassCharacter, 1)
	f.add(t, "rock", types.ClassWorld, 1)

	f.m.DisregardWorldResources(1)
	f.tick(t, true)
	assert.True(t, f.report(t, "hero").InFlight)
	rock := f.report(t, "rock")
	assert.False(t, rock.InFlight)
	assert.Equal(t, rock.Resident, rock.Wanted, "被忽略的资源保持常驻等级")

	f.tick(t, true)
	assert.True(t, f.report(t, "rock").InFlight)
}

func TestManager_MinRequestAfterLevelChange(t *testing.T) {
	cfg := testConfig()
	cfg.Budget.MinRequestLevels = 3
	f := newFixture(t, cfg, 1<<20, false)
	res := sim.NewResource("small", types.ClassWorld, 1, 10, 20)
	require.NoError(t, f.m.RegisterResource(res))

	f.m.NotifyLevelChange()
	f.tick(t, false)
	assert.Zero(t, f.tr.Counts().Begun, "期望等级低于最小请求等级")

	f.tick(t, true)
	assert.Equal(t, uint64(1), f.tr.Counts().Begun, "穷尽模式不受限制")
}

// ============================================================================
//                              紧急驱逐
// ============================================================================

func TestManager_StreamOutSparesPriorityClass(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 4)
	f.add(t, "b", types.ClassWorld, 4)
	f.add(t, "c", types.ClassCharacter, 4)
	f.tick(t, true)
	require.Zero(t, f.tr.Counts().Begun)

	freed, ok := f.m.StreamOut(100)
	assert.True(t, ok)
	assert.Equal(t, int64(100), freed)

	assert.Equal(t, 2, f.report(t, "a").Requested)
	assert.Equal(t, 3, f.report(t, "b").Requested)
	c := f.report(t, "c")
	assert.False(t, c.InFlight, "优先类别在第一轮被保留")
	assert.Equal(t, 4, c.Requested)
}

func TestManager_StreamOutSkipsForced(t *testing.T) {
	f := newFixture(t, testConfig(), 1<<20, false)
	f.add(t, "a", types.ClassWorld, 4)
	f.tick(t, true)
	require.True(t, f.m.Pin("a"))

	freed, ok := f.m.StreamOut(10)
	assert.False(t, ok)
	assert.Zero(t, freed)
}

// ============================================================================
//                              诊断与事件
// ============================================================================

func TestManager_StatsAndResources(t *testing.T) {
	reporter := &mocks.MockReporter{}
	f := newFixture(t, testConfig(), 1000, true, WithReporter(reporter))
	f.add(t, "near", types.ClassWorld, 1)
	f.add(t, "far", types.ClassWorld, 1)
	require.NoError(t, f.m.AddLevel("L1", []types.StaticInstance{
		staticAt("near", 10),
		staticAt("far", 1000),
	}))
	f.m.SubmitView(types.Vector{}, 1000, 1000, 1, false, 0)
	f.tick(t, true)

	stats := f.m.Stats()
	assert.Equal(t, uint64(1), stats.Pass)
	assert.Equal(t, 2, stats.Tracked)
	assert.Equal(t, 2, stats.Issued)
	assert.Equal(t, 2, stats.InFlight)
	assert.True(t, stats.Pool.Supported)
	assert.Equal(t, 1, reporter.PassCount())

	list := f.m.Resources()
	require.Len(t, list, 2)
	assert.Equal(t, types.ResourceID("near"), list[0].ID)
	assert.GreaterOrEqual(t, list[0].Priority, list[1].Priority)

	_, ok := f.m.Inspect("missing")
	assert.False(t, ok)
}

func TestManager_PublishesPassCompleted(t *testing.T) {
	bus := eventbus.NewBus()
	defer bus.Close()
	sub, err := bus.Subscribe([]string{types.EventPassCompleted})
	require.NoError(t, err)

	f := newFixture(t, testConfig(), 1<<20, false, WithEventBus(bus))
	f.add(t, "a", types.ClassWorld, 4)
	f.tick(t, true)

	select {
	case evt := <-sub.Out():
		done, ok := evt.(*types.EvtPassCompleted)
		require.True(t, ok)
		assert.Equal(t, uint64(1), done.Stats.Pass)
	case <-time.After(time.Second):
		t.Fatal("未收到轮次完成事件")
	}
}

// ============================================================================
//                              等待落定
// ============================================================================

func TestManager_BlockUntilSettled(t *testing.T) {
	tr := sim.NewTransfer(sim.NewPool(1 << 20))
	m, err := New(testConfig(), tr, nil)
	require.NoError(t, err)
	defer m.Close()

	res := sim.NewResource("a", types.ClassWorld, 1, sizes...)
	require.NoError(t, m.RegisterResource(res))
	require.NoError(t, m.Tick(context.Background(), 0, true))
	require.Equal(t, 1, tr.InFlight())

	go func() {
		time.Sleep(30 * time.Millisecond)
		tr.CompleteAll()
	}()
	assert.Zero(t, m.BlockUntilSettled(context.Background(), time.Second))

	r, ok := m.Inspect("a")
	require.True(t, ok)
	assert.Equal(t, 4, r.Resident)
	assert.False(t, r.InFlight)
}

func TestManager_BlockUntilSettledTimeLimit(t *testing.T) {
	tr := sim.NewTransfer(sim.NewPool(1 << 20))
	m, err := New(testConfig(), tr, nil)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.RegisterResource(sim.NewResource("a", types.ClassWorld, 1, sizes...)))
	require.NoError(t, m.Tick(context.Background(), 0, true))

	assert.Equal(t, 1, m.BlockUntilSettled(context.Background(), 20*time.Millisecond))
}

// ============================================================================
//                              Fx 模块
// ============================================================================

func TestModule_Lifecycle(t *testing.T) {
	tr := sim.NewTransfer(sim.NewPool(1 << 20))
	var sm interfaces.StreamingManager
	app := fx.New(
		fx.NopLogger,
		fx.Supply(testConfig()),
		fx.Provide(func() interfaces.TransferLayer { return tr }),
		Module(),
		fx.Populate(&sm),
	)
	require.NoError(t, app.Err())
	require.NoError(t, app.Start(context.Background()))

	require.NoError(t, sm.RegisterResource(sim.NewResource("a", types.ClassWorld, 1, sizes...)))
	require.NoError(t, sm.Tick(context.Background(), 0.016, true))

	require.NoError(t, app.Stop(context.Background()))
	assert.ErrorIs(t, sm.Tick(context.Background(), 0.016, true), ErrClosed)
}
