package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceID(t *testing.T) {
	assert.True(t, ResourceID("").IsEmpty())
	assert.False(t, ResourceID("tex/rock").IsEmpty())
	assert.Equal(t, "tex/rock", ResourceID("tex/rock").String())
	assert.Equal(t, "npc-1", OwnerID("npc-1").String())
	assert.Equal(t, "village", LevelID("village").String())
}
