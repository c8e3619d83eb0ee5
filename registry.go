package sconf

import (
	"fmt"
	"sort"
)

// Registry is the process-wide ordered collection of setting
// templates. It is populated during start-up, strictly before any
// Config is constructed, and must be treated as read-only afterwards:
// Register calls must not race with lookups.
type Registry struct {
	ordered []*Setting
	byName  map[string]*Setting
	next    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Setting)}
}

// Register adds a setting template and assigns it the next declaration
// order. Each name is accepted exactly once; a colliding name returns
// a ConflictError so start-up can abort instead of silently replacing
// the earlier declaration.
func (r *Registry) Register(s *Setting) error {
	if s.Name == "" {
		return fmt.Errorf("setting has no name")
	}
	if _, exists := r.byName[s.Name]; exists {
		return &ConflictError{Name: s.Name}
	}
	if s.Short == "" {
		s.Short = firstLine(s.Desc)
	}
	s.order = r.next
	r.next++
	r.ordered = append(r.ordered, s)
	r.byName[s.Name] = s
	return nil
}

// Known reports whether name was ever declared, whether or not a given
// Config has it bound. Config relies on this for its two-tier read
// policy.
func (r *Registry) Known(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.ordered) }

// Settings returns the templates in declaration order.
func (r *Registry) Settings() []*Setting {
	return append([]*Setting(nil), r.ordered...)
}

// LookupAll returns one independent instance per template passing the
// filter: the template's app is unset or equals app; when include is
// non-empty, the name is listed or the template is app-scoped; the
// name is not in exclude. Instances share no mutable state with the
// templates or with other callers' instances.
func (r *Registry) LookupAll(app string, include, exclude []string) (map[string]*Setting, error) {
	inc := nameSet(include)
	exc := nameSet(exclude)

	out := make(map[string]*Setting)
	for _, tpl := range r.ordered {
		if tpl.App != "" && tpl.App != app {
			continue
		}
		if len(inc) > 0 && !inc[tpl.Name] && tpl.App == "" {
			continue
		}
		if exc[tpl.Name] {
			continue
		}
		inst, err := tpl.instantiate()
		if err != nil {
			return nil, err
		}
		out[tpl.Name] = inst
	}
	return out, nil
}

func nameSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// byCLIOrder sorts instances by (section, declaration order) for a
// reproducible flag and help layout.
func byCLIOrder(settings map[string]*Setting) []*Setting {
	out := make([]*Setting, 0, len(settings))
	for _, s := range settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].order < out[j].order
	})
	return out
}

// Builtin assembles the standard server settings. Registration is an
// explicit ordered table rather than an import side effect, so the
// complete set is visible in one place and duplicate names surface
// immediately.
func Builtin() *Registry {
	r := NewRegistry()
	for _, s := range builtinSettings() {
		if err := r.Register(s); err != nil {
			// The builtin table is defined in this package; a conflict
			// here is a bug, not a runtime condition.
			panic(err)
		}
	}
	return r
}
