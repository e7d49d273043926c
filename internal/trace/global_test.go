package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStoreSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestGenerateMessageID(t *testing.T) {
	first := GenerateMessageID()
	second := GenerateMessageID()

	assert.True(t, strings.HasPrefix(first, "msg_"))
	assert.NotEqual(t, first, second)
}

func TestConvenienceLayer(t *testing.T) {
	msgID := GenerateMessageID()

	RecordMessage(&Record{
		MessageID: msgID,
		ChainID:   "global-chain",
		Event:     "bus:emit:done",
		Timestamp: 123456,
	})

	got := GetTrace(msgID)
	require.NotNil(t, got)
	assert.Equal(t, "bus:emit:done", got.Event)

	tree := GetTraceTree("global-chain")
	require.NotNil(t, tree)
	assert.Equal(t, "global-chain", tree.ChainID)

	removed := ClearOlderThan(123457)
	assert.GreaterOrEqual(t, removed, 1)
	assert.Nil(t, GetTrace(msgID))
}
