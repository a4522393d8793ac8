// Package parser runs one document pair through format detection, normalization
// and reference validation.
package parser

import (
	"errors"
	"log/slog"

	_ "github.com/fwbo-viewer/fwbo/internal/markup" // register xml provider
	"github.com/fwbo-viewer/fwbo/internal/model"
	_ "github.com/fwbo-viewer/fwbo/internal/native" // register json provider
	"github.com/fwbo-viewer/fwbo/internal/provider"
	"github.com/fwbo-viewer/fwbo/internal/result"
)

// ModelParser turns raw document text into the canonical model.
type ModelParser struct {
	opts Options
	log  *slog.Logger
}

// New returns a new parser with the given options.
func New(opts Options, log *slog.Logger) *ModelParser {
	if log == nil {
		log = slog.Default()
	}
	return &ModelParser{opts: opts, log: log}
}

// Parse normalizes modelContent and the optional diagramContent.
// Failures that prevent a model are reported in the result with Success=false;
// the returned error is non-nil only for an unsupported explicit format.
func (p *ModelParser) Parse(modelContent, diagramContent string) (*result.ParseResult, error) {
	// 1. Pick the provider
	var prov provider.Provider
	var err error
	if p.opts.Format != "" {
		prov, err = provider.ByFormat(p.opts.Format)
		if err != nil {
			return nil, err
		}
	} else {
		prov, err = provider.ForContent(modelContent)
		if err != nil {
			return nil, err
		}
	}

	// 2. Normalize
	data, err := prov.Parse(modelContent, diagramContent)
	if err != nil {
		errType := "parse_error"
		if !errors.Is(err, result.ErrParse) {
			errType = "internal_error"
		}
		p.log.Warn("parse failed", "format", prov.Format(), "error", err)
		out := result.Failed(errType, err)
		out.Format = prov.Format()
		return out, nil
	}

	out := &result.ParseResult{Success: true, Format: prov.Format(), Data: data}

	// 3. Decode findings are always reported; reference checks are optional
	issues := data.Issues
	if !p.opts.SkipValidation {
		issues = append(issues, model.Validate(data)...)
	}
	for _, is := range issues {
		out.Warnings = append(out.Warnings, result.Warning{
			Type: is.Type, Severity: is.Severity, ID: is.ID,
			Message: is.Message, Suggestion: is.Suggestion,
		})
		p.log.Debug("model issue", "id", is.ID, "type", is.Type, "message", is.Message)
	}

	p.log.Info("model parsed",
		"format", prov.Format(),
		"entities", len(data.Entities),
		"services", len(data.Services),
		"associations", len(data.Associations),
		"aliases", len(data.Aliases),
		"shapes", len(data.Diagram.Shapes),
		"connectors", len(data.Diagram.Connectors),
		"warnings", len(out.Warnings),
	)
	return out, nil
}
