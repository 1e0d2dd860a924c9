package helpers

import (
	"errors"
	"fmt"
	"time"

	"game-data-server/src/logger"
)

// -----------------------------------------------------------------------------
// Error Kinds
// -----------------------------------------------------------------------------

// ErrorKind is the stable code reported to clients for a failed request.
type ErrorKind string

const (
	KindSourceUnavailable    ErrorKind = "SOURCE_UNAVAILABLE"
	KindNotReady             ErrorKind = "NOT_READY"
	KindNotLoggedIn          ErrorKind = "NOT_LOGGED_IN"
	KindSourceTimeout        ErrorKind = "SOURCE_TIMEOUT"
	KindUnmappedState        ErrorKind = "UNMAPPED_STATE"
	KindUnknownVariant       ErrorKind = "UNKNOWN_VARIANT"
	KindMissingDiscriminator ErrorKind = "MISSING_DISCRIMINATOR"
	KindConfigUnavailable    ErrorKind = "CONFIG_UNAVAILABLE"
	KindInternal             ErrorKind = "INTERNAL"
)

// -----------------------------------------------------------------------------
// Custom Error Type
// -----------------------------------------------------------------------------

type GameDataError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *GameDataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GameDataError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewSourceUnavailable reports that a part of the game state (exchange,
// inventory, the client itself) cannot be read yet.
func NewSourceUnavailable(component string, cause error) *GameDataError {
	return &GameDataError{Kind: KindSourceUnavailable, Message: fmt.Sprintf("unable to resolve %s", component), Cause: cause}
}

func NewNotReady(what string) *GameDataError {
	return &GameDataError{Kind: KindNotReady, Message: fmt.Sprintf("%s is not loaded yet", what)}
}

func NewNotLoggedIn(state string) *GameDataError {
	return &GameDataError{Kind: KindNotLoggedIn, Message: fmt.Sprintf("client is running, but got unexpected game state: %s", state)}
}

func NewSourceTimeout(cause error) *GameDataError {
	return &GameDataError{Kind: KindSourceTimeout, Message: "game thread did not answer in time", Cause: cause}
}

func NewUnmappedState(state string) *GameDataError {
	return &GameDataError{Kind: KindUnmappedState, Message: fmt.Sprintf("no slot state for offer state %q", state)}
}

func NewUnknownVariant(discriminator string) *GameDataError {
	return &GameDataError{Kind: KindUnknownVariant, Message: fmt.Sprintf("no strategy config registered as %q", discriminator)}
}

func NewMissingDiscriminator(key string) *GameDataError {
	return &GameDataError{Kind: KindMissingDiscriminator, Message: fmt.Sprintf("strategy config has no %q field", key)}
}

// NewMalformedDiscriminator reports a discriminator that is present but not
// a non-empty string. It shares the missing-discriminator kind.
func NewMalformedDiscriminator(key string, raw []byte) *GameDataError {
	return &GameDataError{Kind: KindMissingDiscriminator, Message: fmt.Sprintf("strategy config has a malformed %q field: %s (want a non-empty string)", key, raw)}
}

func NewConfigUnavailable(cause error) *GameDataError {
	return &GameDataError{Kind: KindConfigUnavailable, Message: "unable to load live config", Cause: cause}
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// KindOf returns the kind of the first GameDataError in err's chain, or
// KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var gde *GameDataError
	if errors.As(err, &gde) {
		return gde.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff runs fn up to maxRetries+1 times with exponential backoff,
// stopping early when retryable reports the error as final.
func RetryWithBackoff[T any](log *logger.Logger, operation string, maxRetries int, baseDelay time.Duration, retryable func(error) bool, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		res, err := fn()
		if err == nil {
			return res, nil
		}

		lastErr = err
		if attempt == maxRetries || (retryable != nil && !retryable(err)) {
			break
		}

		delay := baseDelay * (1 << attempt)
		if log != nil {
			log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries+1, operation, err, delay)
		}
		time.Sleep(delay)
	}

	return zero, lastErr
}
