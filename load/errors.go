package load

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// Kind distinguishes the ways loading can fail.
type Kind int

const (
	// KindIO means the input could not be read.
	KindIO Kind = iota + 1
	// KindInvalidBoard means the board tokens do not form a square.
	KindInvalidBoard
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO error"
	case KindInvalidBoard:
		return "Invalid board"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by every loader in this package.
type Error struct {
	Kind    Kind
	Message string

	inner error
	frame xerrors.Frame
}

func NewError(kind Kind, message string, inner error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		inner:   inner,
		frame:   xerrors.Caller(1),
	}
}

func (e *Error) Error() string {
	if e.inner == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.inner)
}

func (e *Error) Format(f fmt.State, c rune) { // implements fmt.Formatter
	xerrors.FormatError(e, f, c)
}

func (e *Error) FormatError(p xerrors.Printer) error { // implements xerrors.Formatter
	p.Print(fmt.Sprintf("%v: %s", e.Kind, e.Message))
	if p.Detail() {
		e.frame.Format(p)
	}
	return e.inner
}

func (e *Error) Unwrap() error {
	return e.inner
}

// IsKind reports whether err, or anything it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return false
	}
	return lerr.Kind == k
}
