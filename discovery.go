package sconf

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery.
type FileDiscoveryOptions struct {
	// Name is the base name of the config file, without extension.
	Name string

	// Extensions to try, in order.
	Extensions []string

	// Paths lists custom search directories, tried before defaults.
	Paths []string

	// EnvVar names an environment variable holding an explicit path.
	EnvVar string

	// CLIFlags lists flag aliases naming an explicit path, e.g.
	// ["-c", "--config"].
	CLIFlags []string

	// UseXDG searches XDG config directories.
	UseXDG bool

	// UseCurrentDir searches the current directory.
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults for an application
// name: the config setting's flag aliases, an APPNAME_CONFIG variable,
// and the current directory plus XDG paths.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".json", ".conf"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlags:      []string{"-c", "--config"},
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// WithFileDiscovery locates the configuration file before Build runs:
// an explicit CLI flag wins, then the environment variable, then the
// first existing candidate in the search paths. Finding no file is not
// an error; the application runs with defaults, environment and CLI
// values.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	for _, cliFlag := range opts.CLIFlags {
		for i, arg := range b.args {
			if arg == cliFlag && i+1 < len(b.args) {
				b.file = b.args[i+1]
				return b
			}
			if strings.HasPrefix(arg, cliFlag+"=") {
				b.file = strings.TrimPrefix(arg, cliFlag+"=")
				return b
			}
		}
	}

	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			b.file = path
			return b
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if _, err := os.Stat(path); err == nil {
				b.file = path
				return b
			}
		}
	}

	return b
}

// xdgConfigPaths returns XDG-compliant config search paths.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
