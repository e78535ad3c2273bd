package tools

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExecutorFunc defines the standard signature for a function that executes
// the logic of a specific tool. It receives context and parsed arguments,
// and returns a string result or an error.
type ExecutorFunc func(ctx context.Context, args map[string]any) (string, error)

// Definition encapsulates all necessary information about a tool, linking its
// wire representation (Name, Description, Schema) to its execution logic.
type Definition struct {
	Name        string              // The name presented over tools/list
	Description string              // The description presented over tools/list
	Schema      mcp.ToolInputSchema // The MCP input schema for the tool
	Executor    ExecutorFunc        // The function that executes the tool's logic
}

// Provider is the tool source injected into the JSON-RPC dispatcher.  A
// provider enumerates its tools and executes one by name.
type Provider interface {
	Tools() []mcp.Tool
	Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
}

// Set is an in-memory Provider keyed by tool name.  It also supports the demo
// tools/add and tools/remove methods.
type Set struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewSet(defs ...Definition) *Set {
	set := &Set{
		defs: make(map[string]Definition),
	}

	for _, def := range defs {
		set.Add(def)
	}

	return set
}

// Add registers or replaces a tool definition.
func (set *Set) Add(def Definition) {
	log.Debug("adding tool", "name", def.Name)

	set.mu.Lock()
	set.defs[def.Name] = def
	set.mu.Unlock()
}

// Remove drops a tool by name, reporting whether it existed.
func (set *Set) Remove(name string) bool {
	set.mu.Lock()
	defer set.mu.Unlock()

	if _, ok := set.defs[name]; !ok {
		return false
	}

	delete(set.defs, name)
	return true
}

// Get retrieves a tool definition by name.
func (set *Set) Get(name string) (Definition, bool) {
	set.mu.RLock()
	def, found := set.defs[name]
	set.mu.RUnlock()
	return def, found
}

// Tools serializes every definition as an MCP tool descriptor.
func (set *Set) Tools() []mcp.Tool {
	set.mu.RLock()
	defer set.mu.RUnlock()

	out := make([]mcp.Tool, 0, len(set.defs))

	for _, def := range set.defs {
		out = append(out, mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Schema,
		})
	}

	return out
}

// Call executes the named tool.  An unknown name is reported through
// ErrUnknownTool so the dispatcher can distinguish it from executor failures.
func (set *Set) Call(
	ctx context.Context,
	name string,
	args map[string]any,
) (*mcp.CallToolResult, error) {
	def, found := set.Get(name)

	if !found {
		return nil, &ErrUnknownTool{Name: name}
	}

	text, err := def.Executor(ctx, args)

	if err != nil {
		return nil, err
	}

	return TextResult(text), nil
}

// TextResult wraps a plain string into the MCP call result shape.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

// ErrUnknownTool marks a tools/call naming a tool the provider does not know.
type ErrUnknownTool struct {
	Name string
}

func (e *ErrUnknownTool) Error() string {
	return "unknown tool: " + e.Name
}
