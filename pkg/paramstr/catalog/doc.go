/*
Package catalog keeps named paramstr templates and loads them from files.

# Overview

A Catalog maps names to compiled templates. Definitions come from code
(Register, RegisterAll) or from a YAML, JSON or TOML document (LoadFile,
LoadConfig). Each Pattern handed out by the catalog shares the compiled
Template of its definition and owns its values.

# Basic Usage

	c := catalog.New(catalog.WithLogger(logger))
	if err := c.LoadFile(ctx, "templates.yaml"); err != nil {
	    return err
	}

	p, err := c.Pattern("user")
	if err != nil {
	    return err
	}
	p.Set("id", 42)
	p.Apply() // "/users/42"

# File Layout

	defaults:
	  default: "-"
	templates:
	  - name: user
	    pattern: /users/{id}
	  - name: report
	    pattern: reports/<date, yyyy-MM-dd>.csv
	    open: "<"
	    close: ">"

The same layout works as TOML with a [defaults] table and [[templates]]
entries. Loads are all or nothing: when any definition is invalid the errors
of every failing definition are returned together and the catalog keeps its
previous contents.

# Hot Reload

	w, err := c.NewWatcher("templates.yaml")
	if err != nil {
	    return err
	}
	go w.Watch(ctx)
	defer w.Stop()

Changes are debounced (config.Defaults.WatchDebounce, 100ms by default).

# Observability

WithMetrics records catalog loads and template compiles; WithSpanManager
wraps every load in a "paramstr.catalog.load" span.
*/
package catalog
