package providers

import (
	"context"
	"strings"

	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/syntax"
)

// Provider interface for language-specific implementations. A provider
// owns parsing and pattern compilation for one grammar and answers the
// structural questions the matcher asks about it.
type Provider interface {
	// Metadata
	Language() string
	Extensions() []string

	// Core operations
	ParseSource(ctx context.Context, source []byte) (syntax.Tree, error)
	CompilePattern(pattern core.Pattern) (*core.CompiledPattern, error)

	// Matching predicates
	IsSequenceContext(kind string) bool
	IsStatementContext(kind string) bool
	IsComment(kind string) bool
	PlaceholderName(n syntax.Node) (name string, variadic bool, ok bool)
}

// Registry manages all providers
type Registry struct {
	providers  map[string]Provider
	extensions map[string]string
}

// NewRegistry creates provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers:  make(map[string]Provider),
		extensions: make(map[string]string),
	}
}

// Register adds a provider
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Language()] = provider
	for _, ext := range provider.Extensions() {
		r.extensions[strings.ToLower(ext)] = provider.Language()
	}
}

// Get retrieves provider by language
func (r *Registry) Get(language string) (Provider, bool) {
	p, exists := r.providers[language]
	return p, exists
}

// ByExtension retrieves the provider registered for a file extension
// (including the leading dot).
func (r *Registry) ByExtension(ext string) (Provider, bool) {
	lang, ok := r.extensions[strings.ToLower(ext)]
	if !ok {
		return nil, false
	}
	return r.Get(lang)
}

// List returns all providers
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		result = append(result, p)
	}
	return result
}

// Languages returns all registered language identifiers
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.providers))
	for k := range r.providers {
		langs = append(langs, k)
	}
	return langs
}
