package school

import (
	"errors"
	"fmt"
)

// Kind classifies a failed command.
type Kind int

const (
	KindInternal Kind = iota
	KindParseFailure
	KindMissingField
	KindInvalidFormat
	KindNotFound
	KindConflict
	KindCapacityExceeded
	KindAlreadyAbsent
	KindUnknownSubcommand
)

var kindNames = map[Kind]string{
	KindInternal:          "internal",
	KindParseFailure:      "parse_failure",
	KindMissingField:      "missing_field",
	KindInvalidFormat:     "invalid_format",
	KindNotFound:          "not_found",
	KindConflict:          "conflict",
	KindCapacityExceeded:  "capacity_exceeded",
	KindAlreadyAbsent:     "already_absent",
	KindUnknownSubcommand: "unknown_subcommand",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a recoverable domain failure. Msg is the exact text shown to the
// user after the "ERROR: " prefix.
type Error struct {
	Kind   Kind
	Msg    string
	Entity string
	Ref    Ref
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches the kind sentinels below, so errors.Is(err, ErrNotFound) works
// for any not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Msg != "" {
		return false
	}
	return t.Kind == e.Kind
}

// Kind sentinels, only meaningful as errors.Is targets.
var (
	ErrParseFailure      = &Error{Kind: KindParseFailure}
	ErrMissingField      = &Error{Kind: KindMissingField}
	ErrInvalidFormat     = &Error{Kind: KindInvalidFormat}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrCapacityExceeded  = &Error{Kind: KindCapacityExceeded}
	ErrAlreadyAbsent     = &Error{Kind: KindAlreadyAbsent}
	ErrUnknownSubcommand = &Error{Kind: KindUnknownSubcommand}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a domain error, KindInternal for anything else
// (storage failures, broken records).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
