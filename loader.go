package sconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file and then applies command-line
// arguments through the generated parser, so CLI values override file
// values. A missing file is reported as ErrConfigNotFound but does not
// prevent CLI processing; the caller decides whether that is fatal.
func (c *Config) Load(path string, args []string) error {
	var loadErrors []error

	if path != "" {
		if err := c.LoadFile(path); err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				return err
			}
			loadErrors = append(loadErrors, err)
		}
	}
	if len(args) > 0 {
		if err := c.Parser().Parse(args); err != nil {
			loadErrors = append(loadErrors, err)
		}
	}

	return errors.Join(loadErrors...)
}

// LoadFile reads a configuration file and applies its values to the
// bound settings through their validators. The format is chosen by
// extension, falling back to content detection, so the file named by
// the config setting loads regardless of its extension. Keys that are
// not bound to this Config are ignored; rejected values are collected
// and reported together.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrConfigNotFound
		}
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	raw := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse TOML config file %q: %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return fmt.Errorf("failed to parse JSON config file %q: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse YAML config file %q: %w", path, err)
		}
	default:
		return fmt.Errorf("unable to determine config format for file %q", path)
	}

	var loadErrors []error
	applied := 0
	for name, value := range flattenMap(raw, "") {
		s, ok := c.settings[name]
		if !ok {
			continue
		}
		if n, isNumber := value.(json.Number); isNumber {
			// Defer numeric conversion to the validator.
			value = n.String()
		}
		if err := s.Set(value); err != nil {
			loadErrors = append(loadErrors, err)
			continue
		}
		applied++
	}
	if len(loadErrors) > 0 {
		return errors.Join(loadErrors...)
	}

	c.log.Debug().Str("file", path).Str("format", format).Int("settings", applied).Msg("config file loaded")
	return nil
}

// LoadEnv applies environment variables to the bound settings. Each
// setting name maps to prefix plus the uppercased name ("SRV_" and
// "workers" check SRV_WORKERS); values pass through the validators.
// Settings are visited in CLI order so repeated loads behave
// identically.
func (c *Config) LoadEnv(prefix string) error {
	var loadErrors []error

	for _, s := range byCLIOrder(c.settings) {
		envVar := prefix + strings.ToUpper(s.Name)
		value, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}
		if err := s.Set(value); err != nil {
			loadErrors = append(loadErrors, err)
			continue
		}
		c.log.Debug().Str("setting", s.Name).Str("env", envVar).Msg("environment override applied")
	}

	return errors.Join(loadErrors...)
}

// flattenMap converts a nested map to a flat map with dot-notation
// paths. Setting names are flat, so nested tables end up with dotted
// keys no setting matches and are ignored by the loaders.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// detectFileFormat determines format from file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. JSON
// is tried first because it is the strictest; YAML goes last because
// it accepts nearly any document.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
