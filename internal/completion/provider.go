// Package completion talks to the upstream LLM. Callers only ever see the
// text of the first returned choice or a *ProviderError.
package completion

import (
	"context"
	"fmt"
	"strings"
)

type Provider interface {
	// Complete sends system and, when non-empty, user as a separate turn.
	Complete(ctx context.Context, system, user string) (string, error)
}

// ProviderError wraps every failure of an upstream call: transport errors,
// non-2xx statuses, undecodable bodies and empty answers.
type ProviderError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	// Payload is the upstream error body or message, for logging only.
	Payload string
	Err     error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString("completion: provider error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	if e.Payload != "" {
		b.WriteString(": " + e.Payload)
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
