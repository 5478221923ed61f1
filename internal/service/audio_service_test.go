package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/pkg/llm"
)

type audioStubProvider struct {
	pcm   []byte
	err   error
	calls int
}

func (p *audioStubProvider) GenerateAudio(context.Context, string, ...llm.Option) ([]byte, error) {
	p.calls++
	return p.pcm, p.err
}

func (p *audioStubProvider) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (p *audioStubProvider) Generate(context.Context, string, ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (p *audioStubProvider) StreamChat(context.Context, []llm.Message, func(llm.Delta) error, ...llm.Option) error {
	return errors.New("not used")
}

func TestGenerateAudioWrapsPCMInWav(t *testing.T) {
	provider := &audioStubProvider{pcm: []byte{1, 2, 3, 4}}
	svc := NewAudioService(provider, "tts-model", logger.NewNopLogger())

	res, err := svc.Generate(context.Background(), &dto.GenerateAudioRequest{Text: "hola"})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(res.AudioData)
	require.NoError(t, err)
	require.Greater(t, len(raw), 44)
	assert.Equal(t, "RIFF", string(raw[0:4]))
	assert.Equal(t, "WAVE", string(raw[8:12]))
	assert.Equal(t, []byte{1, 2, 3, 4}, raw[44:])
}

func TestGenerateAudioCachesByText(t *testing.T) {
	provider := &audioStubProvider{pcm: []byte{1, 2}}
	svc := NewAudioService(provider, "tts-model", logger.NewNopLogger())

	first, err := svc.Generate(context.Background(), &dto.GenerateAudioRequest{Text: "hola"})
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), &dto.GenerateAudioRequest{Text: "hola"})
	require.NoError(t, err)

	assert.Equal(t, first.AudioData, second.AudioData)
	assert.Equal(t, 1, provider.calls)

	_, err = svc.Generate(context.Background(), &dto.GenerateAudioRequest{Text: "otro texto"})
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestGenerateAudioFailsClosedWithoutPayload(t *testing.T) {
	for name, provider := range map[string]*audioStubProvider{
		"provider error": {err: errors.New("quota exceeded")},
		"empty payload":  {pcm: nil},
	} {
		svc := NewAudioService(provider, "tts-model", logger.NewNopLogger())

		_, err := svc.Generate(context.Background(), &dto.GenerateAudioRequest{Text: "hola"})
		var appErr *serverutils.AppError
		require.ErrorAs(t, err, &appErr, name)
		assert.Equal(t, 502, appErr.Code, name)
	}
}
