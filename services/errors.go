package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the request pipeline. Callers branch with
// errors.Is; user-facing messages come from Error().
var (
	// ErrAuthExpired means the backend answered 401. The stored
	// credential and cached profile have already been purged when
	// this is returned.
	ErrAuthExpired = errors.New("session expired, please log in again")
	// ErrForbidden means the backend answered 403. The credential is
	// left untouched; the user simply lacks rights.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrNetwork means no response was obtained at all, as opposed to
	// the server rejecting the request.
	ErrNetwork = errors.New("could not reach the server, check your connection")
	// ErrMalformedResponse means the backend answered 2xx but an
	// expected field was missing from the body.
	ErrMalformedResponse = errors.New("unexpected response from server")
)

// RequestError is a non-2xx response other than 401/403. Message is the
// backend-provided message or error field, falling back to the HTTP
// status line.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string { return e.Message }

// ValidationError reports locally rejected input. It never reaches the
// network; Fields names exactly the offending fields.
type ValidationError struct {
	Fields   []string
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) > 0 {
		return strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// errorBody is the backend failure envelope. Either field may carry the
// human-readable message.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}
