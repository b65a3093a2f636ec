// Package tool hosts the callable tool registry: named operations with a
// declared permission level, invoked with raw JSON parameters.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
)

// Permission is the access level required to invoke a tool.
type Permission string

const (
	PermissionUser  Permission = "user"
	PermissionAdmin Permission = "admin"
)

// Handler executes a tool with raw JSON parameters and returns its text output.
type Handler func(ctx context.Context, params json.RawMessage) (string, error)

// Definition describes a registered tool to the hosting surface.
type Definition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Permission  Permission `json:"permission"`
}

// Registry maps tool names to handlers. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]registration
}

type registration struct {
	def     Definition
	handler Handler
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]registration)}
}

// Register adds a tool. An existing tool with the same name is replaced.
func (r *Registry) Register(def Definition, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Name] = registration{def: def, handler: h}
}

// Get returns the definition and handler for a tool name.
func (r *Registry) Get(name string) (Definition, Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	return reg.def, reg.handler, ok
}

// List returns all tool definitions sorted by name.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.tools))
	for _, reg := range r.tools {
		defs = append(defs, reg.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// CheckReadiness reports whether the registry can serve invocations,
// which requires at least one registered tool.
func (r *Registry) CheckReadiness(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.tools) == 0 {
		return errors.New("no tools registered")
	}
	return nil
}
