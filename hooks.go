package sconf

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Process is the view of a server or worker process handed to
// lifecycle hooks. The hosting server owns the implementation.
type Process interface {
	Name() string
	PID() int
}

// Request is the view of an in-flight request handed to request
// boundary hooks.
type Request interface {
	Method() string
	Path() string
}

// ProcessHook runs at a process lifecycle boundary: server start,
// fork, exec, worker exit.
type ProcessHook func(p Process)

// RequestHook runs before or after a worker handles a request.
type RequestHook func(p Process, r Request)

// ValidateProcessHook accepts a ProcessHook or an equivalent func
// value. Each hook slot has a fixed signature, so mismatched hooks are
// rejected by type instead of by parameter-count introspection.
func ValidateProcessHook(raw any) (any, error) {
	switch v := raw.(type) {
	case ProcessHook:
		return v, nil
	case func(Process):
		return ProcessHook(v), nil
	default:
		return nil, fmt.Errorf("not a process hook: %T", raw)
	}
}

// ValidateRequestHook accepts a RequestHook or an equivalent func
// value.
func ValidateRequestHook(raw any) (any, error) {
	switch v := raw.(type) {
	case RequestHook:
		return v, nil
	case func(Process, Request):
		return RequestHook(v), nil
	default:
		return nil, fmt.Errorf("not a request hook: %T", raw)
	}
}

func noopProcessHook(Process) {}

func noopRequestHook(Process, Request) {}

// logRequestHook is the default pre_request hook: it traces the
// request at debug level.
func logRequestHook(p Process, r Request) {
	log.Debug().Str("worker", p.Name()).Str("method", r.Method()).Str("path", r.Path()).Msg("request")
}
