package sconf

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the current values of the bound settings into target,
// which must be a non-nil pointer to a struct or map. Fields are
// matched by `toml` tag, the same tag the file loader's format uses.
// Callable settings carry func values and are skipped.
func (c *Config) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	values := make(map[string]any, len(c.settings))
	for name, s := range c.settings {
		if s.Kind == KindCallable || s.Get() == nil {
			continue
		}
		values[name] = s.Get()
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to scan settings into %T: %w", target, err)
	}
	return nil
}
