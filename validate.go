package sconf

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Validator converts raw input into the typed value a setting stores,
// or fails. Validators are pure: they never mutate their input and
// have no side effects, so a failed Set leaves the setting unchanged.
type Validator func(raw any) (any, error)

// ValidateBool accepts a bool or the strings "true"/"false" in any
// case, ignoring surrounding whitespace.
func ValidateBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean: %q", v)
	default:
		return nil, fmt.Errorf("cannot cast %T to bool", raw)
	}
}

// ValidatePosInt accepts integer kinds, bools (as 0/1), and numeric
// strings in any base strconv recognizes with base auto-detection
// ("0x10" yields 16). The result must not be negative.
func ValidatePosInt(raw any) (any, error) {
	if raw == nil {
		return nil, fmt.Errorf("cannot cast nil to int")
	}

	var n int64
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			n = 1
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("integer overflow: %d", u)
		}
		n = int64(u)
	case reflect.String:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v.String()), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", v.String(), err)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("cannot cast %T to int", raw)
	}

	if n < 0 {
		return nil, fmt.Errorf("value must not be negative: %d", n)
	}
	return int(n), nil
}

// ValidateString accepts nil, a string, or a byte slice. Strings are
// trimmed of surrounding whitespace; nil passes through so an unset
// value stays distinguishable from an empty one.
func ValidateString(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.TrimSpace(v), nil
	case []byte:
		return strings.TrimSpace(string(v)), nil
	default:
		return nil, fmt.Errorf("not a string: %v (%T)", raw, raw)
	}
}

// ValidateList accepts nil or any slice, unchanged.
func ValidateList(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if reflect.TypeOf(raw).Kind() != reflect.Slice {
		return nil, fmt.Errorf("not a list: %v (%T)", raw, raw)
	}
	return raw, nil
}
