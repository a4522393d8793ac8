package result

import (
	"errors"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

// ErrParse marks input that could not be decoded into a model at all.
var ErrParse = errors.New("parse error")

// Error represents a failure that prevented a model from being produced.
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	ID         string `json:"id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal finding, such as a dangling reference.
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	ID         string `json:"id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ParseResult is the outcome of normalizing one document pair.
type ParseResult struct {
	Success  bool        `json:"success"`
	Format   string      `json:"format,omitempty"`
	Data     *model.Data `json:"data,omitempty"`
	Errors   []Error     `json:"errors,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
}

// Failed builds a result for an error that stopped parsing.
func Failed(errType string, err error) *ParseResult {
	return &ParseResult{
		Success: false,
		Errors:  []Error{{Type: errType, Severity: "error", Message: err.Error()}},
	}
}
