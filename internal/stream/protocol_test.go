package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrameStart(t *testing.T) {
	frame, err := EncodeFrame(Start())
	require.NoError(t, err)

	assert.Equal(t, "data: {\"type\":\"start\",\"content\":\"正在思考中...\"}\n\n", string(frame))
}

func TestEncodeFrameChunkOmitsMetadata(t *testing.T) {
	frame, err := EncodeFrame(Chunk("你好"))
	require.NoError(t, err)

	assert.Equal(t, "data: {\"type\":\"chunk\",\"content\":\"你好\"}\n\n", string(frame))
}

func TestEncodeFrameEnd(t *testing.T) {
	frame, err := EncodeFrame(End(Metadata{
		Topic:          "general",
		Confidence:     0.45,
		ProcessingTime: 1200,
	}))
	require.NoError(t, err)

	assert.Equal(t,
		"data: {\"type\":\"end\",\"metadata\":{\"topic\":\"general\",\"confidence\":0.45,\"processingTime\":1200}}\n\n",
		string(frame))
}

func TestEncodeFrameError(t *testing.T) {
	frame, err := EncodeFrame(Error())
	require.NoError(t, err)

	assert.Contains(t, string(frame), "\"type\":\"error\"")
	assert.Contains(t, string(frame), ErrorContent)
}
