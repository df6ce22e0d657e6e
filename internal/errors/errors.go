// Package errors provides custom error types for the chat panel.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrBridgeUnavailable = errors.New("host bridge unavailable")
	ErrInvalidHistory    = errors.New("invalid history payload")
	ErrUnknownMethod     = errors.New("unknown bridge method")
)

// BridgeError represents a failed notification to the host.
// Unavailable is set when no usable channel exists at all; otherwise
// the channel raised while delivering Event.
type BridgeError struct {
	Op          string
	Event       string
	Unavailable bool
	Err         error
}

func (e *BridgeError) Error() string {
	if e.Unavailable {
		if e.Event == "" {
			return "host bridge unavailable"
		}
		return fmt.Sprintf("host bridge unavailable: cannot %s %s", e.op(), e.Event)
	}
	if e.Err == nil {
		return fmt.Sprintf("bridge %s %s failed", e.op(), e.Event)
	}
	return fmt.Sprintf("bridge %s %s failed: %v", e.op(), e.Event, e.Err)
}

func (e *BridgeError) op() string {
	if e.Op == "" {
		return "notify"
	}
	return e.Op
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// Is allows comparison with sentinel errors
func (e *BridgeError) Is(target error) bool {
	if target == ErrBridgeUnavailable {
		return e.Unavailable
	}
	_, ok := target.(*BridgeError)
	return ok
}

// NewUnavailableError creates a BridgeError for a missing or closed channel
func NewUnavailableError(op, event string) *BridgeError {
	return &BridgeError{Op: op, Event: event, Unavailable: true}
}

// NewBridgeError creates a BridgeError wrapping a delivery failure
func NewBridgeError(op, event string, err error) *BridgeError {
	return &BridgeError{Op: op, Event: event, Err: err}
}

// PayloadError represents a history payload that could not be parsed
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	if e.Message == "" {
		return "invalid history payload"
	}
	return fmt.Sprintf("invalid history payload: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *PayloadError) Is(target error) bool {
	if target == ErrInvalidHistory {
		return true
	}
	_, ok := target.(*PayloadError)
	return ok
}

// NewPayloadError creates a new PayloadError
func NewPayloadError(message string) *PayloadError {
	return &PayloadError{Message: message}
}

// CallError represents an inbound host call that could not be dispatched
type CallError struct {
	Method  string
	Message string
	Unknown bool
}

func (e *CallError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("unknown bridge method %q", e.Method)
	}
	return fmt.Sprintf("bad arguments for %s: %s", e.Method, e.Message)
}

// Is allows comparison with sentinel errors
func (e *CallError) Is(target error) bool {
	if target == ErrUnknownMethod {
		return e.Unknown
	}
	_, ok := target.(*CallError)
	return ok
}

// NewUnknownMethodError creates a CallError for a method the panel does not expose
func NewUnknownMethodError(method string) *CallError {
	return &CallError{Method: method, Unknown: true}
}

// NewArgumentError creates a CallError for malformed call arguments
func NewArgumentError(method, message string) *CallError {
	return &CallError{Method: method, Message: message}
}

// IsBridgeUnavailable reports whether err means the host channel is missing
func IsBridgeUnavailable(err error) bool {
	return errors.Is(err, ErrBridgeUnavailable)
}

// IsBridgeError reports whether err came from the host bridge
func IsBridgeError(err error) bool {
	var be *BridgeError
	return errors.As(err, &be)
}

// IsPayloadError reports whether err is a malformed history payload
func IsPayloadError(err error) bool {
	return errors.Is(err, ErrInvalidHistory)
}

// IsUnknownMethod reports whether err is a call to a method the panel does not expose
func IsUnknownMethod(err error) bool {
	return errors.Is(err, ErrUnknownMethod)
}
