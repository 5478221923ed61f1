package chat

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEventFraming(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, WriteEvent(w, Event{Text: "hola \"mundo\"\n"}))
	require.NoError(t, WriteEvent(w, Event{Err: "AI communication failed"}))
	require.NoError(t, WriteEvent(w, Event{Done: true}))

	out := buf.String()
	assert.Equal(t,
		"data: {\"text\":\"hola \\\"mundo\\\"\\n\"}\n\n"+
			"data: {\"error\":\"AI communication failed\"}\n\n"+
			"data: [DONE]\n\n",
		out)
}

func TestChannelSinkStopsWhenConsumerGone(t *testing.T) {
	done := make(chan struct{})
	sink := NewChannelSink(done, 1)

	require.NoError(t, sink.Text("cabe en el buffer"))

	// Buffer full and nobody reading: once done closes, sends abort.
	close(done)
	assert.ErrorIs(t, sink.Text("no cabe"), ErrSinkClosed)
	assert.ErrorIs(t, sink.Fail("x"), ErrSinkClosed)
	assert.ErrorIs(t, sink.Done(), ErrSinkClosed)
}
