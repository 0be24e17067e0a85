package domain

import "errors"

var (
	// ErrMissingCredential means the upstream AI credential is not
	// configured. The generation path fails before any network call.
	ErrMissingCredential = errors.New("ai api key not configured")
	// ErrInvalidParameters rejects out-of-range or incomplete quiz parameters.
	ErrInvalidParameters = errors.New("invalid quiz parameters")
	// ErrUpstreamFailure means the AI service returned a non-success status.
	ErrUpstreamFailure = errors.New("ai service request failed")
	// ErrMalformedResponse means the AI payload could not be validated into questions.
	ErrMalformedResponse = errors.New("malformed ai response")

	// ErrSessionNotFound is returned when a quiz session does not exist or expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrInvalidTransition rejects an operation not valid in the session's current phase.
	ErrInvalidTransition = errors.New("operation not valid in current phase")
	// ErrEmptyQuestionSet rejects starting play with zero questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
	// ErrIncompleteAuthoring rejects authored quizzes with blank questions or too few options.
	ErrIncompleteAuthoring = errors.New("authored quiz is incomplete")
	// ErrOptionOutOfRange rejects an answer index outside the current question's options.
	ErrOptionOutOfRange = errors.New("selected option out of range")

	// ErrDecodeFailure means a share token could not be decoded. Callers
	// fall back to a blank authored quiz instead of surfacing this.
	ErrDecodeFailure = errors.New("share token decode failed")
)
