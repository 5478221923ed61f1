package wav

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapHeader(t *testing.T) {
	pcm := make([]byte, 1200)
	out := Wrap(pcm, DefaultSampleRate)

	assert.Len(t, out, 44+len(pcm))
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, uint32(36+len(pcm)), binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))

	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[20:22]), "audio format must be PCM")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[22:24]), "mono")
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(out[24:28]))
	assert.Equal(t, uint32(24000*2), binary.LittleEndian.Uint32(out[28:32]), "byte rate")
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(out[32:34]), "block align")
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(out[34:36]), "bits per sample")

	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, uint32(len(pcm)), binary.LittleEndian.Uint32(out[40:44]))
}

func TestWrapEmptyPayload(t *testing.T) {
	out := Wrap(nil, DefaultSampleRate)
	assert.Len(t, out, 44)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(out[40:44]))
}
