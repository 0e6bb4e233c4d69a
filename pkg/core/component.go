// Package core holds the component model shared by the router and the pages.
package core

import (
	"context"
	"io"
)

// Component is a stateful, server-side view. The router mounts one instance
// per live connection (or per fallback session) and feeds it events.
type Component interface {
	// Name identifies the component type in logs.
	Name() string

	// Mount prepares initial state from the request params and session.
	Mount(ctx context.Context, params Params, session Session) error

	// Render returns the current markup. Called after Mount and after every
	// handled event.
	Render(ctx context.Context) Renderer

	// HandleEvent applies a client event such as a click or input change.
	HandleEvent(ctx context.Context, event string, payload map[string]any) error

	// HandleInfo receives server-side messages addressed to the component.
	HandleInfo(ctx context.Context, msg any) error

	// Terminate runs once when the component is discarded.
	Terminate(ctx context.Context, reason TerminateReason) error
}

// Navigator is implemented by components that can send the browser to
// another path after an event handled over plain HTTP. An empty string
// means stay on the current page.
type Navigator interface {
	NavigateTo() string
}

// Renderer writes HTML.
type Renderer interface {
	Render(ctx context.Context, w io.Writer) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, w io.Writer) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer) error {
	return f(ctx, w)
}

// Params holds query-string values from the connecting request.
type Params map[string]string

// Get returns the value for key or "".
func (p Params) Get(key string) string {
	return p[key]
}

// Session carries per-visitor values set by the HTTP layer.
type Session map[string]any

// Get returns the raw value for key.
func (s Session) Get(key string) any {
	return s[key]
}

// GetString returns the value for key when it is a string.
func (s Session) GetString(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return ""
}

// Well-known session keys populated by the router.
const (
	SessionKeyID        = "session_id"
	SessionKeyCSRFToken = "csrf_token"
)

// TerminateReason tells a component why it is being discarded.
type TerminateReason int

const (
	TerminateNormal TerminateReason = iota
	TerminateShutdown
	TerminateError
	TerminateTimeout
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	case TerminateError:
		return "error"
	case TerminateTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// BaseComponent gives no-op defaults for the optional Component methods.
// Embed it and override what the view needs.
type BaseComponent struct {
	socket  *Socket
	assigns *Assigns
}

// SetSocket is called by the router when a live connection is attached.
func (bc *BaseComponent) SetSocket(s *Socket) {
	bc.socket = s
}

// Socket returns the attached live socket, or nil for plain HTTP renders.
func (bc *BaseComponent) Socket() *Socket {
	return bc.socket
}

// Assigns returns the component's tracked values, creating them on first use.
func (bc *BaseComponent) Assigns() *Assigns {
	if bc.assigns == nil {
		bc.assigns = NewAssigns()
	}
	return bc.assigns
}

func (bc *BaseComponent) Name() string { return "" }

func (bc *BaseComponent) Mount(ctx context.Context, params Params, session Session) error {
	return nil
}

func (bc *BaseComponent) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	return nil
}

func (bc *BaseComponent) HandleInfo(ctx context.Context, msg any) error {
	return nil
}

func (bc *BaseComponent) Terminate(ctx context.Context, reason TerminateReason) error {
	return nil
}

// ComponentRegistry maps names to component factories.
type ComponentRegistry struct {
	components map[string]func() Component
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{components: make(map[string]func() Component)}
}

// Register stores factory under name, replacing any previous entry.
func (r *ComponentRegistry) Register(name string, factory func() Component) {
	r.components[name] = factory
}

// Create builds a fresh component registered under name.
func (r *ComponentRegistry) Create(name string) (Component, bool) {
	f, ok := r.components[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Names lists registered component names in no particular order.
func (r *ComponentRegistry) Names() []string {
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	return names
}
