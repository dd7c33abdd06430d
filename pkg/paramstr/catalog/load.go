package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/paramstr/pkg/paramstr/config"
	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// LoadFile reads template definitions from a YAML, JSON or TOML file and
// replaces the catalog contents with them. See LoadConfig for the layout.
func (c *Catalog) LoadFile(ctx context.Context, path string) error {
	return c.load(ctx, path, func() (config.Config, error) {
		return config.FromFile(path)
	})
}

// LoadConfig replaces the catalog contents with the definitions in cfg.
//
// The document holds a "templates" list and an optional "defaults" table
// overriding the catalog defaults for this document:
//
//	defaults:
//	  default: "-"
//	templates:
//	  - name: user
//	    pattern: /users/{id}
//	  - name: report
//	    pattern: reports/<date>.csv
//	    open: "<"
//	    close: ">"
//
// Every definition is validated before anything changes. If any fails, the
// errors of all failing definitions are returned joined and the previous
// contents stay active; otherwise the catalog switches to the new contents
// in one step.
func (c *Catalog) LoadConfig(ctx context.Context, cfg config.Config) error {
	return c.load(ctx, "config", func() (config.Config, error) {
		return cfg, nil
	})
}

func (c *Catalog) load(ctx context.Context, source string, read func() (config.Config, error)) (err error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	ctx, span := c.spans.StartCatalogSpan(ctx, "load", source)
	done := observability.TimedOperation()
	count := 0
	defer func() {
		elapsed := done()
		c.metrics.RecordCatalogLoad(ctx, count, elapsed, err)
		c.spans.EndSpanWithError(span, err)
		if err != nil {
			observability.LogCatalogError(c.logger, source, err)
			return
		}
		observability.LogCatalogLoad(c.logger, source, count, observability.Milliseconds(elapsed))
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := read()
	if err != nil {
		return err
	}

	defaults := c.defaults
	if section, ok := cfg.Section("defaults"); ok {
		defaults = defaults.Merge(section)
		if err := defaults.Validate(); err != nil {
			return fmt.Errorf("%w: defaults: %w", ErrInvalidDefinition, err)
		}
	}

	items, ok := cfg.List("templates")
	if !ok {
		return fmt.Errorf("%w: %s has no templates list", ErrInvalidDefinition, source)
	}
	defs := make([]Definition, len(items))
	for i, item := range items {
		defs[i] = definitionFromConfig(item)
	}

	built, err := c.buildAll(defs, defaults)
	if err != nil {
		return err
	}

	c.entries.Replace(built)
	count = len(built)
	c.spans.AddSpanEvent(ctx, "catalog_swapped")
	return nil
}

// buildAll compiles every definition and collects all failures.
func (c *Catalog) buildAll(defs []Definition, d config.Defaults) (map[string]entry, error) {
	built := make(map[string]entry, len(defs))
	seen := make(map[string]struct{}, len(defs))
	var errs []error
	for i, def := range defs {
		if _, dup := seen[def.Name]; dup && def.Name != "" {
			errs = append(errs, &DefinitionError{Index: i, Name: def.Name, Err: ErrDuplicateName})
			continue
		}
		seen[def.Name] = struct{}{}
		e, err := c.build(def, d)
		if err != nil {
			errs = append(errs, &DefinitionError{Index: i, Name: def.Name, Err: err})
			continue
		}
		built[def.Name] = e
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return built, nil
}
