package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent(t *testing.T) {
	at := time.Unix(1700000000, 0)
	evt := EvtLevelChangeIssued{
		BaseEvent: NewBaseEvent(EventLevelChangeIssued, at),
		Resource:  "tex-1",
		From:      1,
		To:        4,
	}

	var e Event = evt
	assert.Equal(t, EventLevelChangeIssued, e.Type())
	assert.Equal(t, at, e.Timestamp())
}
