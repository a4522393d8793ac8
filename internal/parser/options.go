package parser

// Options configures the parser behavior.
type Options struct {
	// Format forces a provider ("xml" or "json"). Empty means detect from content.
	Format string
	// SkipValidation disables the reference checks that produce warnings.
	SkipValidation bool
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		Format:         "",
		SkipValidation: false,
	}
}
