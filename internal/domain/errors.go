package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrRemoteRejected     = errors.New("remote rejected request")
	ErrTransport          = errors.New("transport failure")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrSessionKeyNotFound = errors.New("session key not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: rejected by server", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}

type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindValidation   ErrorKind = "validation"
	KindRemote       ErrorKind = "remote"
	KindTransport    ErrorKind = "transport"
	KindUnauthorized ErrorKind = "unauthenticated"
	KindUnclassified ErrorKind = "unclassified"
)

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrRemoteRejected):
		return KindRemote
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrNotAuthenticated):
		return KindUnauthorized
	default:
		return KindUnclassified
	}
}

const genericFailureMessage = "Something went wrong. Please check your connection and try again."

// UserMessage is the text shown to the driver for err.
func UserMessage(err error) string {
	var validationErr *ValidationError
	var remoteErr *RemoteError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &remoteErr):
		if remoteErr.Message == "" {
			return "Request was rejected. Please try again later."
		}
		return remoteErr.Message
	case errors.Is(err, ErrNotAuthenticated):
		return "Please sign in to continue."
	default:
		return genericFailureMessage
	}
}
