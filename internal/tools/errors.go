package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louis030195/toggl-mcp/internal/adapter/toggl"
	"github.com/louis030195/toggl-mcp/internal/usecase"
)

// Kind classifies a failed tool call.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindDomain           Kind = "domain"
	KindAuthentication   Kind = "authentication"
	KindRemote           Kind = "remote"
	KindUnknownOperation Kind = "unknown_operation"
)

// ProtocolKind is the coarse error kind reported to the caller.
type ProtocolKind string

const (
	InvalidParams  ProtocolKind = "invalid_params"
	InvalidRequest ProtocolKind = "invalid_request"
	Internal       ProtocolKind = "internal"
	NotFound       ProtocolKind = "not_found"
)

// Code returns the JSON-RPC error code for the kind.
func (p ProtocolKind) Code() int {
	switch p {
	case InvalidParams:
		return -32602
	case InvalidRequest:
		return -32600
	case NotFound:
		return -32002
	default:
		return -32603
	}
}

// Error is the only error type Dispatch returns.
type Error struct {
	Kind       Kind
	Message    string
	Violations []string // set for KindValidation
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Protocol maps the error onto the caller-facing kind.
func (e *Error) Protocol() ProtocolKind {
	switch e.Kind {
	case KindValidation:
		return InvalidParams
	case KindDomain:
		return InvalidRequest
	case KindUnknownOperation:
		return NotFound
	case KindRemote:
		if errors.Is(e.Err, toggl.ErrNotFound) {
			return NotFound
		}
	}
	return Internal
}

func validationError(tool string, violations []string) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    fmt.Sprintf("invalid arguments for %s: %s", tool, strings.Join(violations, "; ")),
		Violations: violations,
	}
}

func unknownOperation(name string) *Error {
	return &Error{Kind: KindUnknownOperation, Message: fmt.Sprintf("unknown tool: %s", name)}
}

// classify turns a use case failure into an *Error.
func classify(err error) *Error {
	var te *Error
	switch {
	case errors.As(err, &te):
		return te
	case errors.Is(err, usecase.ErrNoRunningTimer):
		return &Error{Kind: KindDomain, Message: "No timer is currently running", Err: err}
	case errors.Is(err, toggl.ErrUnauthorized):
		return &Error{
			Kind:    KindAuthentication,
			Message: "Toggl rejected the credentials; check TOGGL_API_TOKEN: " + err.Error(),
			Err:     err,
		}
	default:
		return &Error{Kind: KindRemote, Message: err.Error(), Err: err}
	}
}
