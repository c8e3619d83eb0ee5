// Package sconf provides declarative configuration for worker-process
// servers: settings are declared as named descriptors, collected into a
// registry at start-up, copied per application into a Config instance,
// and exposed through validated get/set access and an auto-generated
// command-line parser.
//
// Settings carry a default, a validator, CLI flag aliases, and help
// metadata. The builtin registry covers the standard server surface
// (worker count, timeouts, daemonization, process identity, lifecycle
// hooks); applications can register additional settings, optionally
// scoped to one application name.
//
// Quick start:
//
//	cfg, err := sconf.NewBuilder().
//	    WithDescription("my server").
//	    WithFile("config.toml").
//	    WithArgs(os.Args[1:]).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	workers, _ := cfg.Workers()
//	debug, _ := cfg.Bool("debug")
//
// Value precedence (weakest to strongest): registered default, builder
// overrides, configuration file, environment variables, command-line
// arguments. Every value, whatever its source, passes through the
// setting's validator before it is stored.
//
// The registry is populated strictly before any Config is constructed
// and is read-only afterwards, so unsynchronized concurrent reads are
// safe. A Config instance is owned by one server instance; concurrent
// Set calls on the same setting require external serialization.
package sconf
