package catalog

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/randalmurphal/paramstr/pkg/paramstr"
	"github.com/randalmurphal/paramstr/pkg/paramstr/config"
	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
	"github.com/randalmurphal/paramstr/pkg/paramstr/registry"
)

// Catalog is a named set of compiled templates. It is safe for concurrent use.
type Catalog struct {
	entries *registry.Registry[string, entry]
	cache   *registry.Registry[cacheKey, *paramstr.Template]

	defaults config.Defaults
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager

	// loadMu serializes loads so two reloads cannot interleave their swaps.
	loadMu sync.Mutex
}

type entry struct {
	def  Definition
	tmpl *paramstr.Template
}

type cacheKey struct {
	pattern    string
	openDelim  string
	closeDelim string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger for load and reload messages.
//
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaults sets the delimiters and default value policy applied to
// definitions that do not set their own.
//
// Default: config.DefaultDefaults()
func WithDefaults(d config.Defaults) Option {
	return func(c *Catalog) {
		c.defaults = d
	}
}

// WithMetrics sets the recorder for catalog loads and template compiles.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Catalog) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager for catalog loads.
//
// Default: observability.NoopSpanManager{}
func WithSpanManager(sm observability.SpanManager) Option {
	return func(c *Catalog) {
		if sm != nil {
			c.spans = sm
		}
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		entries:  registry.New[string, entry](),
		cache:    registry.New[cacheKey, *paramstr.Template](),
		defaults: config.DefaultDefaults(),
		logger:   slog.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Defaults returns the settings applied to definitions that leave fields unset.
func (c *Catalog) Defaults() config.Defaults {
	return c.defaults
}

// Compile returns the compiled template for pattern using the catalog
// delimiters. Templates are cached, so every caller asking for the same
// pattern shares one Template.
func (c *Catalog) Compile(pattern string) (*paramstr.Template, error) {
	return c.compile(pattern, c.defaults.OpenDelim, c.defaults.CloseDelim)
}

func (c *Catalog) compile(pattern, openDelim, closeDelim string) (*paramstr.Template, error) {
	key := cacheKey{pattern: pattern, openDelim: openDelim, closeDelim: closeDelim}
	return c.cache.GetOrCreate(key, func() (*paramstr.Template, error) {
		return paramstr.Compile(pattern,
			paramstr.WithDelimiters(openDelim, closeDelim),
			paramstr.WithMetrics(c.metrics),
		)
	})
}

// build resolves and compiles def against d.
func (c *Catalog) build(def Definition, d config.Defaults) (entry, error) {
	if err := def.validate(); err != nil {
		return entry{}, err
	}
	def = def.resolve(d)
	tmpl, err := c.compile(def.Pattern, def.Open, def.Close)
	if err != nil {
		return entry{}, err
	}
	return entry{def: def, tmpl: tmpl}, nil
}

// Register compiles def and adds it to the catalog, replacing any template
// with the same name. Nothing changes when the pattern does not compile.
func (c *Catalog) Register(def Definition) error {
	e, err := c.build(def, c.defaults)
	if err != nil {
		return &DefinitionError{Index: -1, Name: def.Name, Err: err}
	}
	c.entries.Register(def.Name, e)
	return nil
}

// RegisterAll registers every definition, or none of them if any fails.
// All failures are reported together.
func (c *Catalog) RegisterAll(defs []Definition) error {
	built, err := c.buildAll(defs, c.defaults)
	if err != nil {
		return err
	}
	for name, e := range built {
		c.entries.Register(name, e)
	}
	return nil
}

// Get returns the compiled template registered under name.
func (c *Catalog) Get(name string) (*paramstr.Template, bool) {
	e, ok := c.entries.Get(name)
	return e.tmpl, ok
}

// Definition returns the resolved definition registered under name.
func (c *Catalog) Definition(name string) (Definition, bool) {
	e, ok := c.entries.Get(name)
	return e.def, ok
}

// Has reports whether a template is registered under name.
func (c *Catalog) Has(name string) bool {
	return c.entries.Has(name)
}

// Pattern returns a new Pattern for the named template with the default
// value policy of its definition. Patterns share the compiled Template.
// Returns ErrNotFound if no template has that name.
func (c *Catalog) Pattern(name string, opts ...paramstr.Option) (*paramstr.Pattern, error) {
	e, ok := c.entries.Get(name)
	if !ok {
		return nil, &DefinitionError{Index: -1, Name: name, Err: ErrNotFound}
	}
	all := append(e.def.patternOptions(),
		paramstr.WithLogger(observability.EnrichLogger(c.logger, name, e.def.Pattern)),
		paramstr.WithMetrics(c.metrics),
	)
	return paramstr.FromTemplate(e.tmpl, append(all, opts...)...), nil
}

// Names returns the registered template names in sorted order.
func (c *Catalog) Names() []string {
	names := c.entries.Keys()
	slices.Sort(names)
	return names
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	return c.entries.Len()
}

// Remove deletes the named template and reports whether it existed.
func (c *Catalog) Remove(name string) bool {
	return c.entries.Delete(name)
}

// Resolve finds the first template, in name order, that matches input and
// returns its name and captured values. Returns ErrNotFound when no
// template matches.
func (c *Catalog) Resolve(ctx context.Context, input string) (string, map[string]string, error) {
	for _, name := range c.Names() {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		tmpl, ok := c.Get(name)
		if !ok {
			continue
		}
		// A template without parameters only matches its own text.
		if len(tmpl.Occurrences()) == 0 {
			if tmpl.String() == input {
				return name, map[string]string{}, nil
			}
			continue
		}
		if values, err := tmpl.Match(input); err == nil {
			return name, values, nil
		}
	}
	return "", nil, ErrNotFound
}
