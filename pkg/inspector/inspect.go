// Package inspector reshapes an introspected GraphQL schema into parsed
// types: flattened type references and descriptions with their directive
// annotations pulled out.
package inspector

import (
	"context"
	"fmt"

	"github.com/samwightt/gqlinspect/pkg/fetch"
	"github.com/samwightt/gqlinspect/pkg/introspection"
)

// Result is a raw schema together with its parsed types.
type Result struct {
	Schema *introspection.Schema
	Types  []ParsedType
}

// Type looks up a parsed type by name.
func (r *Result) Type(name string) (ParsedType, bool) {
	for _, t := range r.Types {
		if t.TypeName() == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns every type name in schema order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		names = append(names, t.TypeName())
	}
	return names
}

// Fetcher returns the raw introspection schema of an endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (*introspection.Schema, error)
}

type config struct {
	fetcher Fetcher
}

type Option func(*config)

// WithFetcher replaces the default fetch.Client.
func WithFetcher(f Fetcher) Option {
	return func(c *config) {
		c.fetcher = f
	}
}

// WithFetchOptions configures the default fetch.Client.
func WithFetchOptions(opts fetch.Options) Option {
	return func(c *config) {
		c.fetcher = fetch.NewClient(opts)
	}
}

// Inspect fetches the schema of endpoint and reshapes all of its types.
func Inspect(ctx context.Context, endpoint string, opts ...Option) (*Result, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fetcher == nil {
		cfg.fetcher = fetch.NewClient(fetch.Options{})
	}

	schema, err := cfg.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching schema from %s: %w", endpoint, err)
	}
	return FromSchema(schema)
}

// InspectTypes is like Inspect but only returns the parsed types.
func InspectTypes(ctx context.Context, endpoint string, opts ...Option) ([]ParsedType, error) {
	result, err := Inspect(ctx, endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return result.Types, nil
}

// FromSchema reshapes an already fetched schema.
func FromSchema(schema *introspection.Schema) (*Result, error) {
	types, err := AnalyzeSchema(schema)
	if err != nil {
		return nil, err
	}
	return &Result{Schema: schema, Types: types}, nil
}
