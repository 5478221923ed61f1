// Package tools holds the function tools the model may invoke during a
// chat turn, plus the registry that dispatches calls by name.
package tools

import (
	"context"

	"promptia-be/pkg/llm"
)

// Tool is a callable function exposed to the model.
type Tool interface {
	// Definition declares the tool's name, description and parameters.
	Definition() llm.ToolDefinition

	// Execute runs the tool with the model-provided arguments.
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Registry maps tool names to implementations.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Definition().Name
		if _, exists := r.tools[name]; !exists {
			r.order = append(r.order, name)
		}
		r.tools[name] = t
	}
	return r
}

// DefaultRegistry returns the registry with the built-in tool set.
func DefaultRegistry() *Registry {
	return NewRegistry(NewWeatherTool(), NewImageTool())
}

// Definitions returns the declarations of all registered tools in
// registration order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute dispatches a call to the named tool. Unknown tool names do not
// fail the turn: a sentinel result is returned so the model can recover.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) map[string]any {
	tool, ok := r.tools[name]
	if !ok {
		return map[string]any{"error": "Unknown tool: " + name}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

// Has reports whether a tool with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
