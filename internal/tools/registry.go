// Package tools defines the tool-callable surface exposed to agents: a
// registry of named tools whose handlers delegate to the orchestration
// core, and the envelope every call result travels in.
package tools

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/audit"
	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/google/uuid"
)

// Handler executes one tool call. The returned value is always
// JSON-serializable; structured failures (OperationError, GuidedResult)
// are values, never errors. The error return is reserved for transport
// failures where no response exists.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Tool is one callable operation.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
	Handler     Handler        `json:"-"`
}

// Module groups related tools; each adapter module implements it.
type Module interface {
	Register(r *Registry) error
}

// Envelope is the standard wrapper for all tool call results.
type Envelope struct {
	OK     bool       `json:"ok"`
	Meta   Meta       `json:"meta"`
	Result any        `json:"result,omitempty"`
	Error  *CallError `json:"error,omitempty"`
}

// Meta carries audit metadata for one call.
type Meta struct {
	CallID     string `json:"call_id"`
	Tool       string `json:"tool"`
	DurationMs int64  `json:"duration_ms"`
}

// CallError is a tool-level error, distinct from structured platform
// failures which travel inside Result.
type CallError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Registry holds the registered tools. Registration happens at startup;
// Call and List are safe for concurrent use afterwards.
type Registry struct {
	mu    sync.RWMutex
	order []string
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Duplicate names are a wiring bug and rejected.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tools: tool needs a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tools[t.Name]; dup {
		return fmt.Errorf("tools: duplicate tool %q", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// List returns every tool in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call invokes a tool by name. It never aborts: unknown tools and
// transport failures come back as envelopes with Error set, everything
// else as OK envelopes whose Result the agent inspects.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) *Envelope {
	env := &Envelope{Meta: Meta{CallID: uuid.NewString(), Tool: name}}
	start := time.Now()

	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		env.Error = &CallError{Code: "unknown_tool", Message: fmt.Sprintf("no tool named %q", name)}
		env.Meta.DurationMs = time.Since(start).Milliseconds()
		return env
	}

	result, err := t.Handler(ctx, args)
	env.Meta.DurationMs = time.Since(start).Milliseconds()

	outcome := "ok"
	if err != nil {
		outcome = "transport_error"
		env.Error = &CallError{Code: "transport_error", Message: err.Error()}
		logger.From(ctx).Warn("tool call failed",
			logger.Tool(name), logger.Err(err))
	} else {
		env.OK = true
		env.Result = result
	}

	audit.Log(ctx, "tool_call", map[string]any{
		"tool":        name,
		"call_id":     env.Meta.CallID,
		"outcome":     outcome,
		"duration_ms": env.Meta.DurationMs,
	})
	return env
}
