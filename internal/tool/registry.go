// Package tool exposes the query service as named tools for agent and
// assistant integrations. Each tool takes loosely-typed JSON arguments,
// delegates to the service, and renders a structured text result.
package tool

import (
	"context"
	"sort"
	"sync"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Tool is one callable capability.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]any
	Call(ctx context.Context, args map[string]any) (string, error)
}

// Registry holds the registered tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Re-registering a name replaces the previous tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Call invokes the named tool. An unknown name is a NOT_FOUND error.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", types.NewError(types.NOT_FOUND, "unknown tool: "+name)
	}
	return t.Call(ctx, args)
}

// funcTool adapts a function to the Tool interface.
type funcTool struct {
	name        string
	description string
	schema      map[string]any
	call        func(ctx context.Context, args map[string]any) (string, error)
}

func (t *funcTool) Name() string                { return t.name }
func (t *funcTool) Description() string         { return t.description }
func (t *funcTool) InputSchema() map[string]any { return t.schema }

func (t *funcTool) Call(ctx context.Context, args map[string]any) (string, error) {
	return t.call(ctx, args)
}
