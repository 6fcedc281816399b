package outreach

import "context"

// Registry is a name-keyed directory of tools. Registration is idempotent on
// name: re-registering replaces the previous tool without changing its place
// in the registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool by name.
func (r *Registry) Register(t Tool) {
	name := t.Name()
	if _, ok := r.tools[name]; !ok {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names lists registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Schemas describes every registered tool in registration order.
func (r *Registry) Schemas() []Schema {
	out := make([]Schema, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, Schema{
			Name:                t.Name(),
			Description:         t.Description(),
			Category:            t.Category(),
			RequiredContextKeys: t.RequiredContextKeys(),
			OptionalContextKeys: t.OptionalContextKeys(),
		})
	}
	return out
}

// ToolsForCategory lists tools with the given agent affinity, in
// registration order.
func (r *Registry) ToolsForCategory(c Category) []Tool {
	var out []Tool
	for _, name := range r.order {
		if t := r.tools[name]; t.Category() == c {
			out = append(out, t)
		}
	}
	return out
}

// Execute runs the named tool under the standard invocation contract.
// An unknown name yields a failed result without touching the context log.
func (r *Registry) Execute(ctx context.Context, name string, ec *Context, inputs map[string]any) ToolResult {
	t, ok := r.Get(name)
	if !ok {
		return Failure("tool \"" + name + "\" not found")
	}
	return Run(ctx, t, ec, inputs)
}
