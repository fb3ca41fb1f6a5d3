// Package hurltemplate parses and renders the string values of a request
// description file: bare and quoted values with JSON-style escapes and
// {{ variable }} interpolations.
//
// The grammar itself lives in pkg/parser; this package adds variable
// handling, rendering and a cache of parsed templates.
package hurltemplate

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

// DefaultCacheSize is the number of parsed templates kept by the default cache.
const DefaultCacheSize = 512

// TemplateCache is a thread-safe, size-bounded cache of parsed templates
// keyed by their source text.
type TemplateCache struct {
	cache *lru.Cache[string, parser.Template]
}

// NewTemplateCache creates a cache holding at most size templates.
func NewTemplateCache(size int) (*TemplateCache, error) {
	c, err := lru.New[string, parser.Template](size)
	if err != nil {
		return nil, err
	}
	return &TemplateCache{cache: c}, nil
}

// Get retrieves a parsed template from the cache.
func (tc *TemplateCache) Get(source string) (parser.Template, bool) {
	return tc.cache.Get(source)
}

// Set stores a parsed template in the cache.
func (tc *TemplateCache) Set(source string, t parser.Template) {
	tc.cache.Add(source, t)
}

// Len returns the number of cached templates.
func (tc *TemplateCache) Len() int {
	return tc.cache.Len()
}

// Parse returns the cached template for source, parsing it on a miss.
// Sources starting with a double quote are parsed as quoted templates.
func (tc *TemplateCache) Parse(source string) (parser.Template, error) {
	if t, ok := tc.Get(source); ok {
		return t, nil
	}
	t, err := parser.ParseTemplate(source)
	if err != nil {
		return parser.Template{}, err
	}
	tc.Set(source, t)
	return t, nil
}

var defaultTemplateCache = mustTemplateCache(DefaultCacheSize)

func mustTemplateCache(size int) *TemplateCache {
	tc, err := NewTemplateCache(size)
	if err != nil {
		panic(err)
	}
	return tc
}

// TemplateString renders a template source using the provided variables.
func TemplateString(source string, vars Variables) (string, error) {
	t, err := defaultTemplateCache.Parse(source)
	if err != nil {
		return "", fmt.Errorf("template parsing error: %w", err)
	}
	s, err := Render(t, vars)
	if err != nil {
		return "", fmt.Errorf("template rendering error: %w", err)
	}
	return s, nil
}
