package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"promptia-be/internal/dto"
	"promptia-be/internal/pkg/logger"
	"promptia-be/internal/pkg/serverutils"
	"promptia-be/pkg/llm"
	"promptia-be/pkg/wav"
)

// ttsInstruction wraps the user's text in a fixed speaking persona.
const ttsInstruction = "Lee el siguiente texto en voz alta con un tono cálido, natural y cercano: %s"

const (
	audioCacheTTL     = time.Hour
	audioCacheCleanup = 10 * time.Minute
)

type IAudioService interface {
	Generate(ctx context.Context, req *dto.GenerateAudioRequest) (*dto.GenerateAudioResponse, error)
}

type audioService struct {
	provider llm.Provider
	model    string
	cache    *cache.Cache
	log      logger.ILogger
}

func NewAudioService(provider llm.Provider, model string, log logger.ILogger) IAudioService {
	return &audioService{
		provider: provider,
		model:    model,
		cache:    cache.New(audioCacheTTL, audioCacheCleanup),
		log:      log,
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (s *audioService) Generate(ctx context.Context, req *dto.GenerateAudioRequest) (*dto.GenerateAudioResponse, error) {
	key := cacheKey(req.Text)
	if cached, found := s.cache.Get(key); found {
		return &dto.GenerateAudioResponse{AudioData: cached.(string)}, nil
	}

	pcm, err := s.provider.GenerateAudio(ctx, fmt.Sprintf(ttsInstruction, req.Text), llm.WithModel(s.model))
	if err != nil {
		s.log.Error("audio", "Audio synthesis failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, serverutils.UpstreamFailure("Error al generar el audio")
	}
	if len(pcm) == 0 {
		return nil, serverutils.UpstreamFailure("Error al generar el audio")
	}

	encoded := base64.StdEncoding.EncodeToString(wav.Wrap(pcm, wav.DefaultSampleRate))
	s.cache.Set(key, encoded, cache.DefaultExpiration)

	return &dto.GenerateAudioResponse{AudioData: encoded}, nil
}
