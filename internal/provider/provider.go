// Package provider selects the normalizer for a document, either by sniffing
// its first character or by an explicit format name.
package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/fwbo-viewer/fwbo/internal/model"
)

const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for an explicit format outside the registered set.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Provider turns a model document and an optional diagram document into the canonical model.
type Provider interface {
	Format() string
	Parse(modelContent, diagramContent string) (*model.Data, error)
}

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register adds a provider under a lower-cased format name.
func Register(format string, p Provider) {
	mu.Lock()
	defer mu.Unlock()
	providers[strings.ToLower(format)] = p
}

// ByFormat returns the provider for an explicit format name, matched case-insensitively.
func ByFormat(format string) (Provider, error) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := providers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return p, nil
}

// Detect returns FormatJSON when the first non-whitespace character is '{' or '[',
// FormatXML otherwise.
func Detect(content string) string {
	trimmed := strings.TrimLeftFunc(content, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON
	}
	return FormatXML
}

// ForContent returns the provider matching the detected format of content.
func ForContent(content string) (Provider, error) {
	return ByFormat(Detect(content))
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(providers))
	for f := range providers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
