package models

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// context via fmt.Errorf("...: %w", ...); handlers map them to HTTP status
// codes with errors.Is.
var (
	// ErrValidation: a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrAuthorization: admin action without a valid session.
	ErrAuthorization = errors.New("authorization required")

	// ErrInvalidTransition: target status is not a legal successor of the
	// current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidState: operation not legal for the current lifecycle state,
	// e.g. voting on a suggestion that is not open for voting.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrDuplicateVote: this voter already voted for this suggestion.
	ErrDuplicateVote = errors.New("already voted")

	// ErrNotFound: unknown suggestion id.
	ErrNotFound = errors.New("not found")

	// ErrMissingField: the transition to published was requested without a
	// video URL.
	ErrMissingField = errors.New("required field missing")

	// ErrUpstream: the data store or video catalog collaborator is
	// unreachable or returned a fault.
	ErrUpstream = errors.New("upstream failure")
)
