// Package chat implements the per-turn conversation pipeline: bounded
// history, streamed completion with at most one tool round-trip, and the
// event framing sent back to the client.
package chat

import (
	"context"
	"errors"
	"strings"

	"promptia-be/internal/pkg/logger"
	"promptia-be/pkg/llm"
	"promptia-be/pkg/llm/tools"
)

// TurnState tracks where a turn is in its lifecycle.
type TurnState string

const (
	StateAwaitingFirstChunk    TurnState = "AwaitingFirstChunk"
	StateStreamingText         TurnState = "StreamingText"
	StateToolCallDetected      TurnState = "ToolCallDetected"
	StateExecutingTool         TurnState = "ExecutingTool"
	StateStreamingContinuation TurnState = "StreamingContinuation"
	StateDone                  TurnState = "Done"
	StateFailed                TurnState = "Failed"
)

// UpstreamErrorMessage is the opaque text surfaced to clients when the
// provider fails mid-turn.
const UpstreamErrorMessage = "AI communication failed"

// errToolCall stops phase-one streaming once a function call is taken.
var errToolCall = errors.New("tool call detected")

// ErrClientGone indicates the sink's consumer disconnected mid-stream.
var ErrClientGone = errors.New("client disconnected")

// TurnResult is the outcome of a completed or failed turn.
type TurnResult struct {
	// Text is the full concatenated response across both phases. It
	// equals exactly what was delivered to the sink.
	Text string

	// ToolUsed is the name of the executed tool, empty if none.
	ToolUsed string

	// ToolArgs and ToolOutput record the single tool round-trip.
	ToolArgs   map[string]any
	ToolOutput map[string]any

	State TurnState

	// Streamed reports whether at least one increment reached the sink
	// before the turn ended. A failed turn with Streamed true has
	// already emitted its error event; one with Streamed false must be
	// converted to a regular error response by the caller.
	Streamed bool
}

// TurnEngine runs one conversation turn against the provider.
type TurnEngine struct {
	provider llm.Provider
	registry *tools.Registry
	log      logger.ILogger
}

func NewTurnEngine(provider llm.Provider, registry *tools.Registry, log logger.ILogger) *TurnEngine {
	return &TurnEngine{provider: provider, registry: registry, log: log}
}

// Run executes a turn over the given history, which must already end
// with the user's current message. Output is forwarded to sink as it
// arrives. At most one tool call is honored; the continuation after a
// tool result never executes a second one.
func (e *TurnEngine) Run(ctx context.Context, history []llm.Message, sink Sink, options ...llm.Option) (*TurnResult, error) {
	result := &TurnResult{State: StateAwaitingFirstChunk}

	var builder strings.Builder
	var call *llm.ToolCall

	emit := func(chunk string) error {
		if err := sink.Text(chunk); err != nil {
			return ErrClientGone
		}
		builder.WriteString(chunk)
		result.Streamed = true
		return nil
	}

	phaseOne := append([]llm.Option{llm.WithTools(e.registry.Definitions())}, options...)
	err := e.provider.StreamChat(ctx, history, func(delta llm.Delta) error {
		if delta.Call != nil {
			// Only the first call is taken.
			call = delta.Call
			result.State = StateToolCallDetected
			return errToolCall
		}
		if delta.Text == "" {
			return nil
		}
		result.State = StateStreamingText
		return emit(delta.Text)
	}, phaseOne...)

	if err != nil && !errors.Is(err, errToolCall) {
		return e.fail(result, sink, err)
	}

	if call != nil {
		result.State = StateExecutingTool
		result.ToolUsed = call.Name
		result.ToolArgs = call.Args
		result.ToolOutput = e.registry.Execute(ctx, call.Name, call.Args)

		continuation := append(history,
			llm.Message{Role: llm.RoleModel, Call: call},
			llm.Message{Role: llm.RoleUser, Result: &llm.ToolResult{Name: call.Name, Response: result.ToolOutput}},
		)

		result.State = StateStreamingContinuation
		err = e.provider.StreamChat(ctx, continuation, func(delta llm.Delta) error {
			if delta.Call != nil || delta.Text == "" {
				return nil
			}
			return emit(delta.Text)
		}, options...)
		if err != nil {
			return e.fail(result, sink, err)
		}

		// The image must reach the client even if the model forgets to
		// restate the markdown reference in its continuation.
		if call.Name == "generate_image" {
			if markdown, ok := result.ToolOutput["markdown"].(string); ok && markdown != "" && !strings.Contains(builder.String(), markdown) {
				if err := emit("\n\n" + markdown); err != nil {
					return e.fail(result, sink, err)
				}
			}
		}
	}

	if err := sink.Done(); err != nil {
		e.log.Debug("chat", "Client disconnected before stream completion", nil)
	}

	result.Text = builder.String()
	result.State = StateDone
	return result, nil
}

func (e *TurnEngine) fail(result *TurnResult, sink Sink, err error) (*TurnResult, error) {
	result.Text = ""
	result.State = StateFailed

	if errors.Is(err, ErrClientGone) {
		e.log.Info("chat", "Client disconnected mid-turn", nil)
		return result, ErrClientGone
	}

	e.log.Error("chat", "Provider failure during turn", map[string]interface{}{
		"error":    err.Error(),
		"streamed": result.Streamed,
	})

	if result.Streamed {
		// Headers are long gone; surface the failure in-band and close
		// without the completion sentinel.
		if sinkErr := sink.Fail(UpstreamErrorMessage); sinkErr != nil {
			return result, ErrClientGone
		}
	}

	return result, err
}
