// Package title derives a short session title from the opening exchange.
package title

import (
	"context"
	"fmt"
	"strings"

	"promptia-be/internal/constant"
	"promptia-be/internal/entity"
	"promptia-be/internal/pkg/logger"
	"promptia-be/pkg/llm"
)

const (
	titleTemperature = 0.2
	titleMaxTokens   = 30
)

const titlePrompt = "Genera un título corto y descriptivo (máximo 5 palabras) para una conversación que empieza así. Responde únicamente con el título, sin comillas ni puntuación final.\n\n%s"

// Generator produces a session title from its first messages. It never
// returns an error: any failure yields the fallback title so that title
// generation can never break a chat turn.
type Generator struct {
	provider llm.Provider
	model    string
	log      logger.ILogger
}

func NewGenerator(provider llm.Provider, model string, log logger.ILogger) *Generator {
	return &Generator{provider: provider, model: model, log: log}
}

// Generate builds the title prompt from at most the first few messages
// and asks the provider for a title at low temperature.
func (g *Generator) Generate(ctx context.Context, messages []*entity.ChatMessage) string {
	if len(messages) > constant.TitlePromptMessageLimit {
		messages = messages[:constant.TitlePromptMessageLimit]
	}

	var transcript strings.Builder
	for _, msg := range messages {
		transcript.WriteString(msg.Role)
		transcript.WriteString(": ")
		transcript.WriteString(msg.Content)
		transcript.WriteString("\n")
	}

	options := []llm.Option{
		llm.WithTemperature(titleTemperature),
		llm.WithMaxTokens(titleMaxTokens),
	}
	if g.model != "" {
		options = append(options, llm.WithModel(g.model))
	}

	raw, err := g.provider.Generate(ctx, fmt.Sprintf(titlePrompt, transcript.String()), options...)
	if err != nil {
		g.log.Warn("title", "Title generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.FallbackSessionTitle
	}

	title := sanitize(raw)
	if title == "" {
		return constant.FallbackSessionTitle
	}
	return title
}

// sanitize strips wrapping quotes and whitespace, then truncates to the
// title length cap with a trailing ellipsis.
func sanitize(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, "\"'“”‘’")
	title = strings.TrimSpace(title)

	if runes := []rune(title); len(runes) > constant.MaxSessionTitleLength {
		title = string(runes[:constant.MaxSessionTitleLength-3]) + "..."
	}
	return title
}
