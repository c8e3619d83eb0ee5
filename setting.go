package sconf

import (
	"fmt"
	"strings"
)

// Kind classifies the value a setting stores. It decides how the
// setting renders on the command line: bool settings become no-value
// switches, callable settings contribute no CLI surface.
type Kind string

const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindBool     Kind = "bool"
	KindCallable Kind = "callable"
	KindList     Kind = "list"
)

// NargsRemainder marks a positional setting that consumes every
// argument left after flag parsing.
const NargsRemainder = -1

// Setting describes one configurable parameter: its unique name, help
// grouping, CLI shape, validator and default. A Setting held by a
// Registry is an immutable template; each Config works on independent
// copies that carry their own current value.
type Setting struct {
	// Name is the unique key in the registry and the dest of the
	// generated CLI argument.
	Name string
	// Section groups settings in help output.
	Section string
	// Flags lists CLI aliases, e.g. ["-w", "--workers"]. A setting
	// without flags and without positional arity is config-file-only.
	Flags []string
	// Nargs makes a flagless named setting positional: a positive
	// count or NargsRemainder.
	Nargs int
	// Kind classifies the stored value.
	Kind Kind
	// Validate converts raw input to the stored value.
	Validate Validator
	// Default, when non-nil, is run through the validator to produce
	// the initial value of each instance.
	Default any
	// App restricts the setting to one named application. Empty means
	// visible everywhere.
	App string
	// Meta is the metavar shown in usage output.
	Meta string
	// Desc is the long help text.
	Desc string
	// Short is the one-line help; derived from the first line of Desc
	// when not set explicitly.
	Short string

	order int
	value any
}

// Order returns the registry-assigned declaration order. Orders are
// strictly increasing and never reused.
func (s *Setting) Order() int { return s.order }

// Get returns the current value. It has no side effects.
func (s *Setting) Get() any { return s.value }

// Set runs the validator against raw and replaces the stored value
// with its output. On failure the stored value is left unchanged and
// the returned ValidationError names the setting and the offending
// input.
func (s *Setting) Set(raw any) error {
	if s.Validate == nil {
		return fmt.Errorf("%w: setting %q", ErrInvalidValidator, s.Name)
	}
	v, err := s.Validate(raw)
	if err != nil {
		return &ValidationError{Name: s.Name, Value: raw, Err: err}
	}
	s.value = v
	return nil
}

// copy returns a copy sharing no mutable state with the receiver.
func (s *Setting) copy() *Setting {
	c := *s
	c.Flags = append([]string(nil), s.Flags...)
	return &c
}

// instantiate produces the live per-Config copy, pushing the declared
// default through the validator.
func (s *Setting) instantiate() (*Setting, error) {
	c := s.copy()
	if c.Default != nil {
		if err := c.Set(c.Default); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// firstLine returns the first non-empty line of a help text, trimmed.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
