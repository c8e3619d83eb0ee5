package sconf

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ValidatorFunc validates a fully loaded Config at the end of Build.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for assembling a Config from
// the registry, a configuration file, environment variables and
// command-line arguments, applied weakest first so CLI wins.
type Builder struct {
	registry   *Registry
	opts       Options
	overrides  map[string]any
	file       string
	envPrefix  string
	args       []string
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a builder seeded with the builtin registry and
// the process arguments.
func NewBuilder() *Builder {
	return &Builder{
		registry: Builtin(),
		args:     os.Args[1:],
	}
}

// WithRegistry replaces the builtin registry.
func (b *Builder) WithRegistry(r *Registry) *Builder {
	b.registry = r
	return b
}

// WithSetting registers an additional setting template, typically an
// application-scoped one.
func (b *Builder) WithSetting(s *Setting) *Builder {
	if err := b.registry.Register(s); err != nil {
		b.err = errors.Join(b.err, err)
	}
	return b
}

// WithApp selects the application name used to filter app-scoped
// settings.
func (b *Builder) WithApp(app string) *Builder {
	b.opts.App = app
	return b
}

// WithInclude limits the bound settings to the listed names plus every
// app-scoped setting.
func (b *Builder) WithInclude(names ...string) *Builder {
	b.opts.Include = append(b.opts.Include, names...)
	return b
}

// WithExclude removes the listed names from the bound settings.
func (b *Builder) WithExclude(names ...string) *Builder {
	b.opts.Exclude = append(b.opts.Exclude, names...)
	return b
}

// WithDescription sets the CLI help description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.opts.Description = desc
	return b
}

// WithEpilog sets the CLI help epilog.
func (b *Builder) WithEpilog(epilog string) *Builder {
	b.opts.Epilog = epilog
	return b
}

// WithRuntime sets the external collaborators for derived views.
func (b *Builder) WithRuntime(rt Runtime) *Builder {
	b.opts.Runtime = &rt
	return b
}

// WithLogger sets the logger receiving load diagnostics.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.opts.Logger = &logger
	return b
}

// WithOverrides applies application-level values between the declared
// defaults and the file, environment and CLI sources.
func (b *Builder) WithOverrides(values map[string]any) *Builder {
	if b.overrides == nil {
		b.overrides = make(map[string]any, len(values))
	}
	for name, value := range values {
		b.overrides[name] = value
	}
	return b
}

// WithFile sets the configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithEnvPrefix enables environment variable loading with the given
// prefix. Without a prefix no environment variables are consulted;
// bare setting names like USER are too generic to read implicitly.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithArgs sets the command-line arguments.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function run at the end of Build.
// Multiple validators run in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build constructs the Config and layers the configured sources onto
// it. A missing config file is returned as ErrConfigNotFound alongside
// the usable Config; every other failure is fatal.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	cfg, err := New(b.registry, b.opts)
	if err != nil {
		return nil, err
	}

	for name, value := range b.overrides {
		if err := cfg.Set(name, value); err != nil {
			return nil, fmt.Errorf("failed to apply override: %w", err)
		}
	}

	var notFound error
	if b.file != "" {
		if err := cfg.LoadFile(b.file); err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return nil, err
			}
			notFound = err
		}
	}
	if b.envPrefix != "" {
		if err := cfg.LoadEnv(b.envPrefix); err != nil {
			return nil, err
		}
	}
	if len(b.args) > 0 {
		if err := cfg.Parser().Parse(b.args); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, notFound
}

// MustBuild is like Build but panics on error. ErrConfigNotFound is
// tolerated; the application proceeds with defaults, environment and
// CLI values.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}
