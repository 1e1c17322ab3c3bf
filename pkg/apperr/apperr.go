package apperr

import (
	"errors"
	"fmt"
)

const (
	MetaReason  = "reason"
	MetaStage   = "stage"
	MetaField   = "field"
	MetaHook    = "hook"
	MetaCommand = "command"
	MetaLocator = "locator"
	MetaURL     = "url"
	MetaHost    = "host"
	MetaPort    = "port"
	MetaTimeout = "timeout"
	MetaStep    = "step"
	MetaLine    = "line"
	MetaPath    = "path"

	StageValidation = "validation"
	StageHook       = "hook"
	StageStart      = "start"
	StageConfigure  = "configure"
	StageCommand    = "command"
	StageWait       = "wait"
	StageStop       = "stop"
	StageScenario   = "scenario"

	CodeInternal        = "internal"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeConfiguration   = "configuration"
	CodeSessionStart    = "session_start"
	CodeSessionStop     = "session_stop"
	CodeSessionClosed   = "session_closed"
	CodeCommand         = "command_failed"
	CodeTimeout         = "timeout"
	CodeHook            = "hook_failed"
	CodeUnsupported     = "unsupported"
	CodeAssertion       = "assertion_failed"
)

type Error struct {
	Op       string
	Code     string
	Err      error
	Metadata map[string]any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare code-only *Error target, which is how Is below walks the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}

	return t.Code == e.Code
}

func Wrap(op, code string, err error, metadata map[string]any) error {
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &Error{
		Op:       op,
		Code:     code,
		Err:      err,
		Metadata: metadata,
	}
}

func WrapWithReason(op, code string, err error, reason string) error {
	return Wrap(op, code, err, map[string]any{
		MetaReason: reason,
	})
}

func WrapErrorWithReason(op, code, reason string) error {
	return Wrap(op, code, errors.New(reason), map[string]any{
		MetaReason: reason,
	})
}

func InvalidReqError(op, field string, err error) error {
	return Wrap(op, CodeInvalidArgument, err, map[string]any{
		MetaField:  field,
		MetaReason: "invalid_request",
	})
}

func NotFoundError(op string, err error) error {
	return Wrap(op, CodeNotFound, err, map[string]any{
		MetaReason: "not_found",
	})
}

func ConfigurationError(op, field string, err error) error {
	return Wrap(op, CodeConfiguration, err, map[string]any{
		MetaField:  field,
		MetaStage:  StageValidation,
		MetaReason: "invalid_configuration",
	})
}

// CommandError wraps a failure reported by the remote end for a delegated command.
func CommandError(op string, err error, locator string) error {
	metadata := map[string]any{
		MetaStage:   StageCommand,
		MetaCommand: op,
	}
	if locator != "" {
		metadata[MetaLocator] = locator
	}

	return Wrap(op, CodeCommand, err, metadata)
}

// CodeOf returns the code of the outermost *Error in the chain, or "" if there is none.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return ""
}

// Is reports whether any *Error in the tree carries the given code.
func Is(err error, code string) bool {
	return errors.Is(err, &Error{Code: code})
}

// IsCommandError reports whether err is a delegated command failure, including
// commands issued against a session that is no longer started.
func IsCommandError(err error) bool {
	return Is(err, CodeCommand) || Is(err, CodeSessionClosed)
}

func Reason(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		if reason, ok := appErr.Metadata[MetaReason].(string); ok {
			return reason
		}
	}

	return ""
}
