// Package advisor defines the Service interface for the external generative
// query service and provides implementations for Gemini and an in-memory
// simulator.
//
// The service accepts a prompt and one of two declared response modes:
// free text with web-search grounding (optionally returning citation
// metadata), or structured JSON constrained by a declared schema. It is the
// application's single external interface.
package advisor

import (
	"context"
	"errors"

	"valuescan/internal/domain"
)

// ErrNoCredential is returned when no API key is configured for the external
// query service.
var ErrNoCredential = errors.New("advisor: no API key configured")

// ErrEmptyResponse is returned when the service answers without any usable
// content.
var ErrEmptyResponse = errors.New("advisor: empty response")

// Grounded is the result of a search-grounded free-text query: the response
// text plus whatever citation metadata the service attached. Sources may be
// empty even on success.
type Grounded struct {
	Text    string
	Sources []domain.Source
}

// Schema declares the shape of a structured response: a JSON-schema-like
// map with "type", "properties", "items", "enum", and "required" keys.
// Implementations translate it into their provider's native schema form.
type Schema map[string]any

// Service abstracts the external generative query service.
type Service interface {
	// Name returns the service identifier (e.g. "gemini", "simulator").
	Name() string

	// GroundedText issues a free-text query with web-search grounding
	// enabled and returns the response text with citation metadata.
	GroundedText(ctx context.Context, prompt string) (Grounded, error)

	// StructuredJSON issues a query whose response is constrained to JSON
	// matching the declared schema, and returns the raw JSON text.
	StructuredJSON(ctx context.Context, prompt string, schema Schema) (string, error)
}
