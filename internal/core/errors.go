package core

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceDisabled means the service flag is off; requests are
	// rejected before any processing happens.
	ErrServiceDisabled = errors.New("llm service is disabled")

	// ErrMissingCredential means the selected provider has no API key.
	ErrMissingCredential = errors.New("provider credential is missing")

	// ErrEmptyQuery marks a request without a usable query field.
	ErrEmptyQuery = errors.New("query is required")
)

// ProviderError wraps an upstream generation failure. It is always recovered
// locally by falling back to the template responder.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SearchError wraps an article fetch or parse failure. Recovered locally by
// treating the corpus as empty for the current query cycle.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("article search: %v", e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}
