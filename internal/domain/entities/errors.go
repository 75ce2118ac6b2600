package entities

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes report failures
type ErrorKind string

const (
	KindUsage           ErrorKind = "usage"
	KindIO              ErrorKind = "io"
	KindMalformedNumber ErrorKind = "malformed-number"
	KindStructure       ErrorKind = "structure"
	KindOverflow        ErrorKind = "overflow"
	KindConfiguration   ErrorKind = "configuration"
)

var (
	// ErrMissingArgument is returned when no log file is named on the command line
	ErrMissingArgument = errors.New("please specify a file as input and try again!")

	// Sentinels for errors.Is matching against a ReportError kind
	ErrIO              = &ReportError{Kind: KindIO}
	ErrMalformedNumber = &ReportError{Kind: KindMalformedNumber}
	ErrStructure       = &ReportError{Kind: KindStructure}
	ErrOverflow        = &ReportError{Kind: KindOverflow}
	ErrConfiguration   = &ReportError{Kind: KindConfiguration}
)

// ReportError provides detailed error information with categorization
type ReportError struct {
	Kind    ErrorKind
	Message string
	Details string
	Cause   error
}

// NewReportError creates a categorized error
func NewReportError(kind ErrorKind, message string, cause error) *ReportError {
	return &ReportError{Kind: kind, Message: message, Cause: cause}
}

// WithDetails returns a copy of the error carrying extra context
func (e *ReportError) WithDetails(format string, args ...interface{}) *ReportError {
	out := *e
	out.Details = fmt.Sprintf(format, args...)
	return &out
}

func (e *ReportError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	if e.Details != "" {
		msg += " - " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Is matches any ReportError of the same kind
func (e *ReportError) Is(target error) bool {
	t, ok := target.(*ReportError)
	return ok && t.Kind == e.Kind
}
