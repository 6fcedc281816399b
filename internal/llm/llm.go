// Package llm abstracts the text generation providers used for live
// company research.
package llm

import "context"

// Options adjusts a single generation call.
type Options struct {
	// SystemInstruction sets the provider-level persona for the call.
	SystemInstruction string

	// JSONOutput asks the provider for a single JSON object response.
	JSONOutput bool
}

// Client generates text for a prompt. Implementations wrap transient
// provider failures (rate limits, 5xx) so callers can retry.
type Client interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	Model() string
}

// Stub returns a canned response for every prompt. Used in tests and when
// no provider credentials are configured.
type Stub struct {
	Response string
	Err      error
	Prompts  []string
}

func (s *Stub) Generate(_ context.Context, prompt string, _ Options) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

func (s *Stub) Model() string { return "stub" }
