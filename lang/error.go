package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// kind classifies an Error as ParserError, EvalError, or OtherError. Only
// Error's constructors set it; callers never need to name it directly.
type kind int

const (
	kindOther kind = iota
	kindParser
	kindEval
)

func (k kind) String() string {
	switch k {
	case kindParser:
		return "parser"
	case kindEval:
		return "eval"
	default:
		return "other"
	}
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer, the same shape as the
// teacher's lang/error.go.
type Error struct {
	kind  kind
	msg   string
	err   error
	attrs []slog.Attr
}

// NewParserError reports a grammar mismatch. Display: "ParserError(msg)".
func NewParserError(msg string) *Error {
	return &Error{kind: kindParser, msg: msg}
}

// NewEvalError reports a runtime evaluation failure. Display:
// "EvalError(msg)".
func NewEvalError(msg string) *Error {
	return &Error{kind: kindEval, msg: msg}
}

// NewOtherError reports an unclassified failure (e.g. storage I/O).
func NewOtherError(msg string) *Error {
	return &Error{kind: kindOther, msg: msg}
}

// WrapError wraps a standard error into an OtherError, unless it already is
// an *Error, in which case it is returned unchanged.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{kind: kindOther, err: err}
}

// Error implements the error interface, rendering "Kind(msg)" or
// "Kind(msg: cause)" when a wrapped error is present.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	body := strings.Join(part, ": ")

	switch e.kind {
	case kindParser:
		return "ParserError(" + body + ")"
	case kindEval:
		return "EvalError(" + body + ")"
	default:
		return "OtherError(" + body + ")"
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// IsParser reports whether err is a ParserError.
func IsParser(err error) bool { return hasKind(err, kindParser) }

// IsEval reports whether err is an EvalError.
func IsEval(err error) bool { return hasKind(err, kindEval) }

func hasKind(err error, k kind) bool {
	var ee *Error
	if !errors.As(err, &ee) {
		return false
	}

	return ee.kind == k
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a new Error of the same kind wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{kind: e.kind, msg: e.msg, err: err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging, returning a
// new Error to preserve immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{kind: e.kind, msg: e.msg, err: e.err, attrs: newAttrs}
}
