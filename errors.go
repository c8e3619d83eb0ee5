package sconf

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSetting indicates access to a name that was never
	// declared anywhere in the registry.
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidValidator indicates a setting whose validator is nil.
	// It surfaces at the first Set on the broken setting.
	ErrInvalidValidator = errors.New("invalid validator")
	// ErrConfigNotFound indicates a missing configuration file. It is
	// not fatal during a layered load; the application can proceed
	// with defaults, environment and CLI values.
	ErrConfigNotFound = errors.New("config file not found")
)

// ConflictError reports a setting name declared twice under different
// descriptors. It is a start-up error: the earlier declaration is
// never silently overwritten.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("setting %q is already registered", e.Name)
}

// ValidationError reports a validator rejecting raw input, either at
// instantiation (bad default) or on Set. The stored value is left
// unchanged; the error carries the setting name and the offending
// input.
type ValidationError struct {
	Name  string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for setting %q (%v): %v", e.Name, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
