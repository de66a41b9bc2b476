package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
//                              ResourceClass 测试
// ============================================================================

func TestResourceClass_String(t *testing.T) {
	assert.Equal(t, "world", ResourceClass("").String(), "空分类视为 world")
	assert.Equal(t, "character", ClassCharacter.String())
	assert.Equal(t, "lightmap", ClassLightmap.String())
}

// ============================================================================
//                              TransferStatus 测试
// ============================================================================

func TestTransferStatus(t *testing.T) {
	tests := []struct {
		status  TransferStatus
		name    string
		pending bool
	}{
		{TransferIdle, "idle", false},
		{TransferInFlight, "in-flight", true},
		{TransferCancelling, "cancelling", true},
		{TransferStatus(99), "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String())
			assert.Equal(t, tt.pending, tt.status.Pending())
		})
	}
}

// ============================================================================
//                              HeuristicKind 测试
// ============================================================================

func TestHeuristicKind_Precedence(t *testing.T) {
	// 数值越小优先级越高
	assert.Less(t, int(HeuristicForced), int(HeuristicDynamic))
	assert.Less(t, int(HeuristicDynamic), int(HeuristicStatic))
	assert.Less(t, int(HeuristicStatic), int(HeuristicOrphaned))
	assert.Less(t, int(HeuristicOrphaned), int(HeuristicLastUsed))
	assert.Less(t, int(HeuristicLastUsed), int(HeuristicNone))
}

func TestHeuristicKind_String(t *testing.T) {
	assert.Equal(t, "forced", HeuristicForced.String())
	assert.Equal(t, "dynamic", HeuristicDynamic.String())
	assert.Equal(t, "static", HeuristicStatic.String())
	assert.Equal(t, "orphaned", HeuristicOrphaned.String())
	assert.Equal(t, "last-used", HeuristicLastUsed.String())
	assert.Equal(t, "none", HeuristicNone.String())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "collect", StageCollect.String())
	assert.Equal(t, "schedule", StageSchedule.String())
	assert.Equal(t, "apply", StageApply.String())
	assert.Equal(t, "unknown", Stage(7).String())
}
