package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// RateLimitError indicates the provider returned 429.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError indicates the provider is down, unreachable or timed out.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the provider answered but the content
// could not be parsed into the expected structure.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Transient reports whether the error justifies falling back to the next
// provider in the chain.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var rate *RateLimitError
	if errors.As(err, &rate) {
		return true
	}
	var unavail *UnavailableError
	if errors.As(err, &unavail) {
		return true
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
