package sconf

import (
	"fmt"
	"net"

	"github.com/rs/zerolog"
)

// WorkerClass is a concurrency implementation resolved from the
// worker_class setting. Its behavior is owned by the hosting server;
// this package only loads it and runs its optional setup hook.
type WorkerClass any

// ClassSetup is implemented by worker classes that need one-time
// initialization after load.
type ClassSetup interface {
	SetupClass()
}

// Runtime carries the collaborators a Config delegates to for its
// derived views. The hosting process owns the implementations; nil
// functions make the corresponding view fail when used.
type Runtime struct {
	// Version is printed by the generated parser's --version flag.
	Version string
	// ServerName is the last-resort process name fallback.
	ServerName string
	// LoadWorkerClass resolves a worker_class URI.
	LoadWorkerClass func(uri string) (WorkerClass, error)
	// ParseAddress parses a bind string into a network address.
	ParseAddress func(s string) (net.Addr, error)
	// LookupUID resolves a user name to a numeric id.
	LookupUID func(name string) (int, error)
	// LookupGID resolves a group name to a numeric id.
	LookupGID func(name string) (int, error)
}

// Options configures construction of a Config.
type Options struct {
	// App selects app-scoped settings and is matched against each
	// template's App restriction.
	App string
	// Include, when non-empty, limits the bound settings to the listed
	// names plus every app-scoped setting.
	Include []string
	// Exclude removes the listed names from the bound settings.
	Exclude []string
	// Description and Epilog frame the generated CLI help.
	Description string
	Epilog      string
	// Runtime supplies the external collaborators for derived views.
	Runtime *Runtime
	// Logger receives load diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Config is one application's live, filtered, mutable set of setting
// values derived from a registry. All mutation goes through Set, so a
// stored value is always validator output, never raw input.
//
// A Config is exclusively owned by one server instance. Set calls on
// different settings are independent; concurrent Set calls on the same
// setting require external serialization.
type Config struct {
	// Description and Epilog frame the generated CLI help.
	Description string
	Epilog      string

	settings map[string]*Setting
	registry *Registry
	rt       Runtime
	log      zerolog.Logger
}

// New builds a Config from the filtered, copied subset of reg selected
// by opts. Defaults run through their validators here, so a broken
// default surfaces as a ValidationError at construction.
func New(reg *Registry, opts Options) (*Config, error) {
	settings, err := reg.LookupAll(opts.App, opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	c := &Config{
		Description: opts.Description,
		Epilog:      opts.Epilog,
		settings:    settings,
		registry:    reg,
		log:         zerolog.Nop(),
	}
	if c.Description == "" {
		c.Description = "server configuration"
	}
	if opts.Runtime != nil {
		c.rt = *opts.Runtime
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c, nil
}

// Get returns the current value of name. A name that is registered but
// filtered out of this Config reads as nil with no error; a name the
// registry has never seen returns ErrUnknownSetting.
func (c *Config) Get(name string) (any, error) {
	if s, ok := c.settings[name]; ok {
		return s.Get(), nil
	}
	if c.registry.Known(name) {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
}

// Set validates raw and stores the result under name. It returns
// ErrUnknownSetting when name is not bound to this Config — including
// registered names its filter excluded — and a ValidationError when
// the validator rejects raw, leaving the stored value unchanged.
func (c *Config) Set(name string, raw any) error {
	s, ok := c.settings[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
	}
	return s.Set(raw)
}

// Setting returns the bound instance for name, or nil.
func (c *Config) Setting(name string) *Setting {
	return c.settings[name]
}

// Settings returns the bound instances sorted by (section, declaration
// order).
func (c *Config) Settings() []*Setting {
	return byCLIOrder(c.settings)
}

// String returns the value of a string-valued setting. Absent values
// read as "".
func (c *Config) String(name string) (string, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("setting %q holds %T, not string", name, v)
	}
	return s, nil
}

// Int returns the value of an int-valued setting. Absent values read
// as 0.
func (c *Config) Int(name string) (int, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("setting %q holds %T, not int", name, v)
	}
	return n, nil
}

// Bool returns the value of a bool-valued setting. Absent values read
// as false.
func (c *Config) Bool(name string) (bool, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("setting %q holds %T, not bool", name, v)
	}
	return b, nil
}

// Workers returns the configured worker count.
func (c *Config) Workers() (int, error) {
	return c.Int("workers")
}

// ResolveWorkerClass resolves the worker_class setting through the
// runtime loader and runs the class setup hook once after load. The
// worker_class setting is app-supplied; resolving it on a Config whose
// registry never declared one returns ErrUnknownSetting.
func (c *Config) ResolveWorkerClass() (WorkerClass, error) {
	uri, err := c.String("worker_class")
	if err != nil {
		return nil, err
	}
	if c.rt.LoadWorkerClass == nil {
		return nil, fmt.Errorf("no worker class loader configured")
	}
	cls, err := c.rt.LoadWorkerClass(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to load worker class %q: %w", uri, err)
	}
	if setup, ok := cls.(ClassSetup); ok {
		setup.SetupClass()
	}
	return cls, nil
}

// Addr parses the bind setting through the runtime address parser. It
// returns nil when bind is unset or not bound to this Config.
func (c *Config) Addr() (net.Addr, error) {
	s, ok := c.settings["bind"]
	if !ok || s.Get() == nil {
		return nil, nil
	}
	bind, _ := s.Get().(string)
	if c.rt.ParseAddress == nil {
		return nil, fmt.Errorf("no address parser configured")
	}
	return c.rt.ParseAddress(bind)
}

// UID resolves the user setting to a numeric id. ok is false when the
// setting is unset or not bound to this Config.
func (c *Config) UID() (uid int, ok bool, err error) {
	return c.lookupID("user", c.rt.LookupUID)
}

// GID resolves the group setting to a numeric id. ok is false when the
// setting is unset or not bound to this Config.
func (c *Config) GID() (gid int, ok bool, err error) {
	return c.lookupID("group", c.rt.LookupGID)
}

func (c *Config) lookupID(name string, lookup func(string) (int, error)) (int, bool, error) {
	s, ok := c.settings[name]
	if !ok || s.Get() == nil {
		return 0, false, nil
	}
	ident, _ := s.Get().(string)
	if lookup == nil {
		return 0, false, fmt.Errorf("no identity lookup configured for %s", name)
	}
	id, err := lookup(ident)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve %s %q: %w", name, ident, err)
	}
	return id, true, nil
}

// ProcName returns the effective process name: proc_name when set,
// else the per-application default_proc_name, else the runtime's
// server name.
func (c *Config) ProcName() string {
	for _, name := range []string{"proc_name", "default_proc_name"} {
		if s, ok := c.settings[name]; ok {
			if v, _ := s.Get().(string); v != "" {
				return v
			}
		}
	}
	if c.rt.ServerName != "" {
		return c.rt.ServerName
	}
	return DefaultServerName
}

// WhenReady returns the server start hook.
func (c *Config) WhenReady() ProcessHook { return c.processHook("when_ready") }

// PreFork returns the hook run just before a worker is forked.
func (c *Config) PreFork() ProcessHook { return c.processHook("pre_fork") }

// PostFork returns the hook run just after a worker is forked.
func (c *Config) PostFork() ProcessHook { return c.processHook("post_fork") }

// PreExec returns the hook run before a new master process is forked.
func (c *Config) PreExec() ProcessHook { return c.processHook("pre_exec") }

// WorkerExit returns the hook run after a worker exits.
func (c *Config) WorkerExit() ProcessHook { return c.processHook("worker_exit") }

// PreRequest returns the hook run before a worker handles a request.
func (c *Config) PreRequest() RequestHook { return c.requestHook("pre_request") }

// PostRequest returns the hook run after a worker handles a request.
func (c *Config) PostRequest() RequestHook { return c.requestHook("post_request") }

func (c *Config) processHook(name string) ProcessHook {
	if s, ok := c.settings[name]; ok {
		if h, ok := s.Get().(ProcessHook); ok && h != nil {
			return h
		}
	}
	return noopProcessHook
}

func (c *Config) requestHook(name string) RequestHook {
	if s, ok := c.settings[name]; ok {
		if h, ok := s.Get().(RequestHook); ok && h != nil {
			return h
		}
	}
	return noopRequestHook
}
