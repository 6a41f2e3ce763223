package translate

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoAPIKey is returned when the provider's API key is not set.
	ErrNoAPIKey = errors.New("api key not set")

	// ErrEmptySource is returned when there is no Korean text to translate.
	ErrEmptySource = errors.New("nothing to translate")

	// ErrEmptyResponse is returned when the reply holds no translation.
	ErrEmptyResponse = errors.New("empty translation response")
)

// ProviderError wraps a failure reported by a provider.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s (%s): %v", e.Provider, e.Model, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}
