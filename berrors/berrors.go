// Package berrors defines the two kinds of interpreter error
package berrors

import (
	"errors"
	"fmt"
)

// Kind separates errors the session recovers from and errors that end it
type Kind int

const (
	Syntax Kind = iota + 1 // reported, then the session keeps going
	Fatal                  // the session is done
)

// BasicError carries the raw message text.  The SYNTAX ERROR / FATAL
// ERROR prefix and any line annotation are added where the error is
// reported, not where it is raised.
type BasicError struct {
	Kind Kind
	Msg  string
}

func (be *BasicError) Error() string {
	return be.Msg
}

// New builds an error from an already formatted message
func New(kind Kind, msg string) *BasicError {
	return &BasicError{Kind: kind, Msg: msg}
}

// NewSyntax builds a recoverable error
func NewSyntax(format string, args ...any) *BasicError {
	return &BasicError{Kind: Syntax, Msg: fmt.Sprintf(format, args...)}
}

// NewFatal builds a session ending error
func NewFatal(format string, args ...any) *BasicError {
	return &BasicError{Kind: Fatal, Msg: fmt.Sprintf(format, args...)}
}

// AsBasic pulls the BasicError out of err, minting a Fatal one for
// anything foreign.
func AsBasic(err error) *BasicError {
	var be *BasicError
	if errors.As(err, &be) {
		return be
	}
	return &BasicError{Kind: Fatal, Msg: err.Error()}
}

// IsSyntax reports whether err is a recoverable interpreter error
func IsSyntax(err error) bool {
	var be *BasicError
	return errors.As(err, &be) && be.Kind == Syntax
}
