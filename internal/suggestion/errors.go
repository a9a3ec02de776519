package suggestion

import "errors"

// Common errors returned by suggestion providers
var (
	// ErrSuggestionFailed is returned when a suggestion cannot be produced
	// for any general reason
	ErrSuggestionFailed = errors.New("failed to produce suggestion")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed
	// or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to
	// safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve
	// on retry
	ErrTransientFailure = errors.New("transient error during suggestion")

	// ErrUnavailable is returned when no suggestion provider is configured
	ErrUnavailable = errors.New("suggestion provider unavailable")

	// ErrInvalidConfig is returned when the provider configuration is invalid
	ErrInvalidConfig = errors.New("invalid suggestion provider configuration")
)
