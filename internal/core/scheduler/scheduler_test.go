package scheduler

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lodstream/internal/core/heuristic"
	"github.com/dep2p/go-lodstream/internal/core/placement"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var now = time.Unix(1_700_000_000, 0)

func input(index int, resident int, lastUsed time.Duration) heuristic.Input {
	sizes := []int64{0, 10, 20, 40, 80}
	return heuristic.Input{
		Index:      index,
		ID:         types.ResourceID(fmt.Sprintf("r%d", index)),
		LevelCount: 4,
		Resident:   resident,
		Requested:  resident,
		Sizes:      sizes,
		LastUsed:   now.Add(-lastUsed),
		Boost:      1,
	}
}

// ============================================================================
//                              优先级
// ============================================================================

func TestConfig_Priority(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.Priority(13, 1, time.Second, false)
	want := 1 + (1-math.Sqrt(1.0/10000))*(1-0.5/90)
	assert.InDelta(t, want, got, 1e-9)

	assert.InDelta(t, got+100, cfg.Priority(13, 1, time.Second, true), 1e-9, "强制常驻加成")

	// 距离与时间钳制
	assert.InDelta(t, cfg.Priority(4, 1, time.Second, false), cfg.Priority(4, 0, 0, false), 1e-9)
	assert.InDelta(t, 4.0/13, cfg.Priority(4, 1e9, time.Hour, false), 1e-9)
}

func TestConfig_PriorityOrdering(t *testing.T) {
	cfg := DefaultConfig()

	near := cfg.Priority(4, 10, time.Second, false)
	far := cfg.Priority(4, 1000, time.Second, false)
	assert.Greater(t, near, far)

	recent := cfg.Priority(4, 10, time.Second, false)
	stale := cfg.Priority(4, 10, 80*time.Second, false)
	assert.Greater(t, recent, stale)

	high := cfg.Priority(8, 10, time.Second, false)
	assert.Greater(t, high, near)
}

// ============================================================================
//                              调度
// ============================================================================

func TestScheduler_NilJob(t *testing.T) {
	s := New(DefaultConfig())
	_, err := s.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilJob)
}

func TestScheduler_CandidatesSorted(t *testing.T) {
	store := placement.NewStore()
	require.NoError(t, store.AddLevel("l", []types.StaticInstance{
		{Resource: "r0", Bounds: types.Sphere{Center: types.Vector{X: 1000}}, TexelFactor: 1000},
		{Resource: "r1", Bounds: types.Sphere{Center: types.Vector{X: 10}}, TexelFactor: 1000},
	}))

	job := &Job{
		Pass: 7,
		Inputs: []heuristic.Input{
			input(0, 1, time.Hour),
			input(1, 1, time.Hour),
			input(2, 1, time.Hour), // 无放置且早已不用：wanted=min=resident，不是候选
		},
		Env: heuristic.Env{
			Now:        now,
			Views:      []types.ViewInfo{{ScreenSize: 1000, FOVScreenSize: 1000, Boost: 1}},
			Placements: store.Snapshot(),
			Fudge:      1,
		},
	}

	res, err := New(DefaultConfig()).Run(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), res.Pass)
	require.Len(t, res.Advice, 3)
	assert.Equal(t, []int{1, 0}, res.Candidates, "近处资源优先")
	assert.Equal(t, 4, res.Advice[1].Wanted)
	assert.Equal(t, types.HeuristicStatic, res.Advice[1].Heuristic)
	assert.Equal(t, types.HeuristicLastUsed, res.Advice[2].Heuristic)
	assert.Equal(t, 2, res.Stats.Wanting)
}

func TestScheduler_TiesByIndex(t *testing.T) {
	var inputs []heuristic.Input
	for i := 0; i < 5; i++ {
		inputs = append(inputs, input(4-i, 2, time.Hour))
	}
	job := &Job{Inputs: inputs, Env: heuristic.Env{Now: now, Fudge: 1}}

	res, err := New(DefaultConfig()).Run(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 5, "resident > min 的资源都是候选")

	var order []int
	for _, c := range res.Candidates {
		order = append(order, res.Advice[c].Index)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestScheduler_Aggregate(t *testing.T) {
	grow := input(0, 1, 0)
	grow.InFlight = true
	grow.Requested = 3

	shrink := input(1, 4, time.Hour)
	shrink.InFlight = true
	shrink.Requested = 2

	idleWanting := input(2, 2, 0)
	idleShrinking := input(3, 3, time.Hour)

	job := &Job{
		Inputs: []heuristic.Input{grow, shrink, idleWanting, idleShrinking},
		Env:    heuristic.Env{Now: now, Fudge: 1},
	}
	res, err := New(DefaultConfig()).Run(context.Background(), job)
	require.NoError(t, err)

	st := res.Stats
	assert.Equal(t, int64(10+80+20+40), st.ResidentBytes)
	assert.Equal(t, int64(80+10+80+10), st.WantedBytes)
	assert.Equal(t, int64(40-10), st.PendingInBytes)
	assert.Equal(t, int64(80-20), st.PendingOutBytes)
	assert.Equal(t, int64(80-20), st.WantedInBytes)
	assert.Equal(t, int64(40-10), st.WantedOutBytes)
	assert.Equal(t, int64(10+80), st.TempBytes)
	assert.Equal(t, 2, st.InFlight)
	assert.Equal(t, 2, st.Wanting)
	assert.Equal(t, int64(180), st.HeuristicBytes[types.HeuristicLastUsed])
	assert.Equal(t, map[string]int64{"last-used": 180}, st.HeuristicMap())
}

func TestScheduler_DisregardWorld(t *testing.T) {
	world := input(0, 3, 0)
	character := input(1, 1, 0)
	character.Class = types.ClassCharacter

	job := &Job{
		Inputs:         []heuristic.Input{world, character},
		Env:            heuristic.Env{Now: now, Fudge: 1},
		DisregardWorld: true,
	}
	res, err := New(DefaultConfig()).Run(context.Background(), job)
	require.NoError(t, err)

	assert.True(t, res.Advice[0].Excluded)
	assert.Equal(t, 3, res.Advice[0].Wanted, "被忽略的资源保持现状")
	assert.False(t, res.Advice[1].Excluded)
	assert.Equal(t, []int{1}, res.Candidates)
	assert.Equal(t, 1, res.Stats.Excluded)
}

func TestScheduler_ParallelMatchesSerial(t *testing.T) {
	var inputs []heuristic.Input
	for i := 0; i < 1000; i++ {
		in := input(i, 1+i%4, time.Duration(i)*100*time.Millisecond)
		inputs = append(inputs, in)
	}
	job := &Job{Inputs: inputs, Env: heuristic.Env{Now: now, Fudge: 1}}

	serialCfg := DefaultConfig()
	serialCfg.Workers = 1
	parallelCfg := DefaultConfig()
	parallelCfg.Workers = 8

	a, err := New(serialCfg).Run(context.Background(), job)
	require.NoError(t, err)
	b, err := New(parallelCfg).Run(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, a.Advice, b.Advice)
	assert.Equal(t, a.Candidates, b.Candidates)
	assert.Equal(t, a.Stats, b.Stats)
}

// ============================================================================
//                              异步
// ============================================================================

func TestScheduler_StartWait(t *testing.T) {
	job := &Job{
		Pass:   3,
		Inputs: []heuristic.Input{input(0, 1, 0)},
		Env:    heuristic.Env{Now: now, Fudge: 1},
	}
	p := New(DefaultConfig()).Start(context.Background(), job)

	res, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Pass)
	assert.True(t, p.Done())
}

func TestScheduler_StartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var inputs []heuristic.Input
	for i := 0; i < 500; i++ {
		inputs = append(inputs, input(i, 1, 0))
	}
	p := New(DefaultConfig()).Start(ctx, &Job{Inputs: inputs, Env: heuristic.Env{Now: now, Fudge: 1}})

	_, err := p.Wait(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPending_WaitContextDone(t *testing.T) {
	p := &Pending{done: make(chan struct{}), cancel: func() {}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, p.Done())
}
