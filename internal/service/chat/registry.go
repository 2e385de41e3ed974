package chat

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// Tool is one function the model may call mid-stream.
type Tool interface {
	// Definition describes the tool to the model.
	Definition() openai.Tool

	// Execute runs the tool with the decoded arguments and returns a
	// JSON-serializable result.
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Registry holds the tools offered to the model. Safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any tool with the same name.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Definition().Function.Name] = tool
}

// Definitions lists every registered tool for the completion request.
func (r *Registry) Definitions() []openai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]openai.Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition())
	}
	return defs
}

// Execute runs a named tool. Unknown tools and tool failures both come
// back as an error for the model to read, never as a relay failure.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return tool.Execute(ctx, args)
}
