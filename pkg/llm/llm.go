// Package llm defines a provider-agnostic interface for chat completion,
// streaming, and audio synthesis against a hosted language model.
package llm

import "context"

// Role values used in provider conversations.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResult carries the outcome of an executed tool back to the model.
type ToolResult struct {
	Name     string
	Response map[string]any
}

// Message is a single turn in a provider conversation. Exactly one of
// Content, Call or Result is expected to be set.
type Message struct {
	Role    string
	Content string
	Call    *ToolCall
	Result  *ToolResult
}

// Delta is an increment of a streamed model response.
type Delta struct {
	Text string
	Call *ToolCall
}

// ToolParam describes a single parameter of a tool.
type ToolParam struct {
	Type        string
	Description string
}

// ToolDefinition declares a tool the model may call during a turn.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]ToolParam
	Required    []string
}

// Provider is the contract for a language model backend.
type Provider interface {
	// Chat runs a non-streaming completion over the given history and
	// returns the full response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// StreamChat runs a streaming completion, invoking onDelta for each
	// increment. If onDelta returns an error, streaming stops and the
	// error is returned unwrapped.
	StreamChat(ctx context.Context, history []Message, onDelta func(Delta) error, options ...Option) error

	// Generate runs a single-prompt completion with no prior history.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateAudio synthesizes speech for the given text and returns
	// raw PCM audio bytes (16-bit little-endian, mono, 24kHz).
	GenerateAudio(ctx context.Context, text string, options ...Option) ([]byte, error)
}

// Settings collects per-call overrides applied by Option values.
type Settings struct {
	Model             string
	Temperature       *float64
	MaxTokens         int
	SystemInstruction string
	Tools             []ToolDefinition
}

// Option mutates per-call settings.
type Option func(*Settings)

// ApplySettings folds the given options into a Settings value.
func ApplySettings(options ...Option) Settings {
	var s Settings
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// WithModel overrides the model name for a single call.
func WithModel(model string) Option {
	return func(s *Settings) { s.Model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(s *Settings) { s.Temperature = &t }
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int) Option {
	return func(s *Settings) { s.MaxTokens = n }
}

// WithSystemInstruction sets the system instruction for the call.
func WithSystemInstruction(instruction string) Option {
	return func(s *Settings) { s.SystemInstruction = instruction }
}

// WithTools declares the tools available to the model for the call.
func WithTools(defs []ToolDefinition) Option {
	return func(s *Settings) { s.Tools = defs }
}
