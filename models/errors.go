// ABOUTME: Typed domain errors for the analysis pipeline
// ABOUTME: Callers branch on error kind, never on message substrings

package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error.
type ErrorKind string

const (
	// ErrInput covers malformed, empty, or degenerate mesh input.
	ErrInput ErrorKind = "input"
	// ErrComputation covers configuration problems such as zero-valued
	// rate parameters that would divide by zero.
	ErrComputation ErrorKind = "computation"
	// ErrCollaborator covers failures of external collaborators
	// (geometry loader, text generation, scraper, ledger).
	ErrCollaborator ErrorKind = "collaborator"
)

// DomainError is the single error type crossing collaborator boundaries.
type DomainError struct {
	Kind    ErrorKind
	Op      string // operation that failed, e.g. "mesh.load"
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewInputError creates an input-kind domain error.
func NewInputError(op, message string, err error) *DomainError {
	return &DomainError{Kind: ErrInput, Op: op, Message: message, Err: err}
}

// NewComputationError creates a computation-kind domain error.
func NewComputationError(op, message string) *DomainError {
	return &DomainError{Kind: ErrComputation, Op: op, Message: message}
}

// NewCollaboratorError creates a collaborator-kind domain error.
func NewCollaboratorError(op, message string, err error) *DomainError {
	return &DomainError{Kind: ErrCollaborator, Op: op, Message: message, Err: err}
}

// KindOf returns the kind of err if it is (or wraps) a DomainError,
// and "" otherwise.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
