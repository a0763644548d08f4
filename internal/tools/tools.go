// Package tools provides the tool framework for stormy.
package tools

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Tool defines the interface that all tools must implement.
type Tool interface {
	// Name returns the unique identifier for this tool. It is the name the
	// model emits in an Action line, lowercase letters and underscores.
	Name() string

	// Description returns the usage text shown verbatim to the model. It
	// must document the expected argument shape.
	Description() string

	// Execute runs the tool with the free-text argument from the Action
	// line and returns a structured result.
	Execute(args string) (map[string]any, error)
}

// SafeExecute calls a tool's Execute and never fails: any error or panic is
// absorbed into a {"error": message} payload so the agent loop only ever
// inspects returned maps.
func SafeExecute(tool Tool, args string, logger *zap.Logger) (result map[string]any) {
	if logger == nil {
		logger = zap.NewNop()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool panicked",
				zap.String("tool", tool.Name()),
				zap.String("args", args),
				zap.Any("panic", r))
			result = map[string]any{
				"error": fmt.Sprintf("Error executing the tool %s with args %s", tool.Name(), args),
			}
		}
	}()

	logger.Debug("executing tool",
		zap.String("tool", tool.Name()),
		zap.String("args", args))

	out, err := tool.Execute(args)
	if err != nil {
		logger.Error("tool execution failed",
			zap.String("tool", tool.Name()),
			zap.String("args", args),
			zap.Error(err))
		return map[string]any{
			"error": fmt.Sprintf("Error executing the tool %s with args %s", tool.Name(), args),
		}
	}
	return out
}

// Registry manages tool registration and lookup. Registration order is
// preserved: the rendered prompt and the "available tools" listing walk
// tools in the order they were registered.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]Tool
	rev   uint64
}

// NewRegistry creates a registry holding the given tools, in order.
func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range ts {
		r.Register(t)
	}
	return r
}

// Register adds a tool. Registering under an existing name replaces the
// previous tool in place, keeping its position in the rendered prompt.
// Every call bumps the registry revision so cached prompts can be rebuilt.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := normalize(tool.Name())
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
	r.rev++
}

// Get retrieves a tool by name, case-insensitively.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, exists := r.tools[normalize(name)]
	return tool, exists
}

// Keys returns all registered tool names in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// All returns all registered tools in registration order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		ts = append(ts, r.tools[name])
	}
	return ts
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Rev returns the registry revision, bumped on every Register call. The
// agent compares it against the revision its cached system prompt was built
// from.
func (r *Registry) Rev() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rev
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
