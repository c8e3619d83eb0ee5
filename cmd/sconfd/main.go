// Command sconfd demonstrates a server bootstrap: builtin settings,
// profile overrides, config file discovery, environment variables and
// command-line arguments, layered weakest first.
package main

import (
	"errors"
	"net"
	"os"

	"dario.cat/mergo"
	"github.com/rs/zerolog"

	"sconf"
)

const version = "sconfd/0.4.0"

// profile holds operator-tunable defaults layered over the builtin
// setting defaults before file, environment and CLI values apply.
type profile struct {
	Workers  int    `toml:"workers"`
	Timeout  int    `toml:"timeout"`
	LogLevel string `toml:"loglevel"`
}

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("role", "server").Logger()

	// Production profile merged over the base profile; unset fields
	// fall through to the base values.
	base := profile{Workers: 1, Timeout: 30, LogLevel: "info"}
	prod := profile{Workers: 4, LogLevel: "warning"}
	if err := mergo.Merge(&prod, base); err != nil {
		logger.Fatal().Err(err).Msg("failed to merge profiles")
	}

	rt := sconf.Runtime{
		Version:    version,
		ServerName: "sconfd",
		ParseAddress: func(s string) (net.Addr, error) {
			return net.ResolveTCPAddr("tcp", s)
		},
	}

	cfg, err := sconf.NewBuilder().
		WithDescription("sconfd worker-process server").
		WithRuntime(rt).
		WithLogger(logger).
		WithOverrides(map[string]any{
			"workers":  prod.Workers,
			"timeout":  prod.Timeout,
			"loglevel": prod.LogLevel,
		}).
		WithFileDiscovery(sconf.DefaultDiscoveryOptions("sconfd")).
		WithEnvPrefix("SCONFD_").
		WithArgs(os.Args[1:]).
		Build()
	if err != nil && !errors.Is(err, sconf.ErrConfigNotFound) {
		logger.Fatal().Err(err).Msg("configuration failed")
	}

	workers, err := cfg.Workers()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid worker count")
	}
	logger.Info().
		Int("workers", workers).
		Str("proc_name", cfg.ProcName()).
		Msg("configuration loaded")

	if err := cfg.Dump(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to dump configuration")
	}
}
