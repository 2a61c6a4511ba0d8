// Package errors provides the process-tagged errors used by the jbig2 packages.
// Each error carries the name of the process that created it and, when wrapping,
// the cause, so that the standard 'errors.Is' and 'errors.As' keep working.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

type processError struct {
	header  string
	process string
	message string
	wrapped error
}

// Error implements error interface.
func (p *processError) Error() string {
	var msg string
	if p.header != "" {
		msg = p.header
	}
	msg += "Process: " + p.process
	if p.message != "" {
		msg += " Message: " + p.message
	}
	if p.wrapped != nil {
		msg += ". " + p.wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error.
func (p *processError) Unwrap() error {
	return p.wrapped
}

func newProcessError(message, processName string) *processError {
	return &processError{header: "[JBIG2] ", message: message, process: processName}
}

// Error creates new error with the provided 'processName' and 'message'.
func Error(processName, message string) error {
	return errors.WithStack(newProcessError(message, processName))
}

// Errorf creates new error with the provided 'processName' and formatted message.
func Errorf(processName, message string, arguments ...interface{}) error {
	return errors.WithStack(newProcessError(fmt.Sprintf(message, arguments...), processName))
}

// Wrap wraps the 'err' error within the process error with the 'processName' and 'message'.
// A nil 'err' gives a nil result.
func Wrap(err error, processName, message string) error {
	if err == nil {
		return nil
	}
	p := newProcessError(message, processName)
	p.wrapped = err
	if _, ok := err.(stackTracer); ok {
		return p
	}
	return errors.WithStack(p)
}

// Wrapf wraps the 'err' error within the process error with the formatted message.
func Wrapf(err error, processName, message string, arguments ...interface{}) error {
	return Wrap(err, processName, fmt.Sprintf(message, arguments...))
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}
