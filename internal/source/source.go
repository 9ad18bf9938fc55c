// Package source fetches the task list offered for the first-run import.
package source

import (
	"context"
	"errors"
	"fmt"
)

// RawTask is one entry of the remote list.
type RawTask struct {
	ID        int64  `json:"id" yaml:"id"`
	Todo      string `json:"todo" yaml:"todo"`
	Completed bool   `json:"completed" yaml:"completed"`
	UserID    int64  `json:"userId" yaml:"userId"`
}

// RawImportList is the envelope the remote endpoint returns.
type RawImportList struct {
	Todos []RawTask `json:"todos" yaml:"todos"`
	Total int       `json:"total" yaml:"total"`
	Skip  int       `json:"skip" yaml:"skip"`
	Limit int       `json:"limit" yaml:"limit"`
}

// Source produces the list to import.
type Source interface {
	Fetch(ctx context.Context) (*RawImportList, error)
}

// Kind identifies what went wrong while fetching.
type Kind int

const (
	// KindURL means the endpoint address could not be used.
	KindURL Kind = iota
	// KindResponse means the server answered with a non-2xx status.
	KindResponse
	// KindServer means the request never got an answer.
	KindServer
	// KindData means the body was empty or unreadable.
	KindData
	// KindParsing means the body could not be decoded.
	KindParsing
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindResponse:
		return "response"
	case KindServer:
		return "server"
	case KindData:
		return "data"
	case KindParsing:
		return "parsing"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is the user facing text for k.
func (k Kind) Message() string {
	switch k {
	case KindURL:
		return "The task list address is invalid."
	case KindResponse:
		return "The server rejected the request."
	case KindServer:
		return "Could not reach the server."
	case KindData:
		return "The server returned no data."
	case KindParsing:
		return "The task list could not be read."
	default:
		return "Unknown source error."
	}
}

// Error is returned by every Source implementation.
type Error struct {
	Kind       Kind
	StatusCode int // set for KindResponse
	Err        error
}

func (e *Error) Error() string {
	msg := "source " + e.Kind.String() + " error"
	if e.Kind == KindResponse && e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsSourceError reports whether err (or anything it wraps) is a *Error.
func IsSourceError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
