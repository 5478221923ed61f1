// Package gemini implements llm.Provider on top of the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"promptia-be/pkg/llm"
)

var ErrEmptyResponse = errors.New("gemini: empty response from model")

// Provider talks to the Gemini API through the official genai client.
type Provider struct {
	client       *genai.Client
	defaultModel string
}

// New creates a Gemini-backed provider. defaultModel is used whenever a
// call does not override the model.
func New(ctx context.Context, apiKey, defaultModel string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Provider{client: client, defaultModel: defaultModel}, nil
}

func (p *Provider) model(s llm.Settings) string {
	if s.Model != "" {
		return s.Model
	}
	return p.defaultModel
}

func buildConfig(s llm.Settings) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if s.Temperature != nil {
		t := float32(*s.Temperature)
		config.Temperature = &t
	}
	if s.MaxTokens > 0 {
		config.MaxOutputTokens = int32(s.MaxTokens)
	}
	if s.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(s.SystemInstruction)},
		}
	}
	if len(s.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(s.Tools)}}
	}

	return config
}

func toSchemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func toDeclarations(defs []llm.ToolDefinition) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		properties := make(map[string]*genai.Schema, len(def.Parameters))
		for name, param := range def.Parameters {
			properties[name] = &genai.Schema{
				Type:        toSchemaType(param.Type),
				Description: param.Description,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   def.Required,
			},
		})
	}
	return decls
}

func toContents(history []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		c := &genai.Content{Role: msg.Role}
		switch {
		case msg.Call != nil:
			c.Parts = append(c.Parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: msg.Call.Name,
					Args: msg.Call.Args,
				},
			})
		case msg.Result != nil:
			c.Parts = append(c.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     msg.Result.Name,
					Response: msg.Result.Response,
				},
			})
		default:
			c.Parts = append(c.Parts, genai.NewPartFromText(msg.Content))
		}
		contents = append(contents, c)
	}
	return contents
}

func extractText(c *genai.Content) string {
	var text string
	for _, part := range c.Parts {
		text += part.Text
	}
	return text
}

// Chat implements llm.Provider.
func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	settings := llm.ApplySettings(options...)

	resp, err := p.client.Models.GenerateContent(ctx, p.model(settings), toContents(history), buildConfig(settings))
	if err != nil {
		return "", fmt.Errorf("generateContent: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	return extractText(resp.Candidates[0].Content), nil
}

// StreamChat implements llm.Provider. Text and function-call parts are
// forwarded to onDelta in the order the model emits them.
func (p *Provider) StreamChat(ctx context.Context, history []llm.Message, onDelta func(llm.Delta) error, options ...llm.Option) error {
	settings := llm.ApplySettings(options...)

	for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model(settings), toContents(history), buildConfig(settings)) {
		if err != nil {
			return fmt.Errorf("generateContentStream: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}

		for _, part := range resp.Candidates[0].Content.Parts {
			var delta llm.Delta
			if part.FunctionCall != nil {
				delta.Call = &llm.ToolCall{
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				}
			} else if part.Text != "" {
				delta.Text = part.Text
			} else {
				continue
			}

			if err := onDelta(delta); err != nil {
				return err
			}
		}
	}

	return nil
}

// Generate implements llm.Provider.
func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	history := []llm.Message{{Role: llm.RoleUser, Content: prompt}}
	return p.Chat(ctx, history, options...)
}

// GenerateAudio implements llm.Provider. The returned bytes are raw PCM
// as produced by the speech model.
func (p *Provider) GenerateAudio(ctx context.Context, text string, options ...llm.Option) ([]byte, error) {
	settings := llm.ApplySettings(options...)

	config := buildConfig(settings)
	config.ResponseModalities = []string{"AUDIO"}
	config.SpeechConfig = &genai.SpeechConfig{
		VoiceConfig: &genai.VoiceConfig{
			PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: "Kore"},
		},
	}

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	resp, err := p.client.Models.GenerateContent(ctx, p.model(settings), contents, config)
	if err != nil {
		return nil, fmt.Errorf("generateContent audio: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}

	return nil, ErrEmptyResponse
}
