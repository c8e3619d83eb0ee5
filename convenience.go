package sconf

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick builds a Config for one application with a single call, using
// the builtin registry, the given config file and arguments.
func Quick(app, file string, args []string) (*Config, error) {
	return NewBuilder().
		WithApp(app).
		WithFile(file).
		WithArgs(args).
		Build()
}

// Debug returns a formatted dump of every bound setting with its
// current and default value, in CLI order.
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("configuration debug info:\n")
	fmt.Fprintf(&b, "description: %s\n", c.Description)

	for _, s := range c.Settings() {
		fmt.Fprintf(&b, "  %s:\n", s.Name)
		fmt.Fprintf(&b, "    current: %v\n", s.Get())
		fmt.Fprintf(&b, "    default: %v\n", s.Default)
	}

	return b.String()
}

// Dump writes the current non-callable, non-nil settings to w as TOML.
// The core persists nothing itself; callers own any file handling.
func (c *Config) Dump(w io.Writer) error {
	values := make(map[string]any, len(c.settings))
	for name, s := range c.settings {
		if s.Kind == KindCallable || s.Get() == nil {
			continue
		}
		values[name] = s.Get()
	}

	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(values); err != nil {
		return fmt.Errorf("failed to encode settings to TOML: %w", err)
	}
	return nil
}
