// Package action is the dispatch target bytecode RUN_ACTION/RUN_VOID_ACTION
// instructions call into: a name-keyed table of handlers, generalized from
// marwind's fixed `[]action` slice (wm/wm.go's initActions(wm)) into a
// registry the configuration parser can resolve bindings against by name.
package action

import "github.com/thepsauce/fensterchef/internal/expr"

// Handler is invoked with the action's evaluated argument. Handlers never
// return an error: spec.md's runtime-action-error rule is "fail silently",
// so a handler that cannot act (no target window, nothing to operate on)
// just does nothing.
type Handler func(arg expr.Value)

type entry struct {
	name     string
	kind     expr.ArgKind
	optional bool
	handler  Handler
}

// Registry implements expr.Dispatcher, resolving action names to stable ids
// at compile time and dispatching to their handler at evaluation time.
type Registry struct {
	byName  map[string]int32
	entries []entry
}

// NewRegistry returns an empty action table.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]int32{}}
}

// Register adds an action under name. Re-registering a name replaces its
// handler in place, keeping its id stable (used when reloading
// configuration rewires handlers against a fresh *wm.Context without
// invalidating already-compiled bytecode that references the old id).
func (r *Registry) Register(name string, kind expr.ArgKind, optional bool, h Handler) int32 {
	if id, ok := r.byName[name]; ok {
		r.entries[id] = entry{name: name, kind: kind, optional: optional, handler: h}
		return id
	}
	id := int32(len(r.entries))
	r.byName[name] = id
	r.entries = append(r.entries, entry{name: name, kind: kind, optional: optional, handler: h})
	return id
}

// Lookup implements expr.Dispatcher.
func (r *Registry) Lookup(name string) (int32, expr.ArgKind, bool, bool) {
	id, ok := r.byName[name]
	if !ok {
		return 0, expr.ArgVoid, false, false
	}
	e := r.entries[id]
	return id, e.kind, e.optional, true
}

// Call implements expr.Dispatcher. An id with no registered handler (should
// not happen for ids minted by Lookup, but defends against a VM running a
// Program compiled against a different Registry) is ignored.
func (r *Registry) Call(id int32, arg expr.Value) {
	if id < 0 || int(id) >= len(r.entries) {
		return
	}
	if h := r.entries[id].handler; h != nil {
		h(arg)
	}
}

// Names returns every registered action name, for `--list-actions`-style
// diagnostics and completion.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for name, id := range r.byName {
		names[id] = name
	}
	return names
}
