/*
Package config reads paramstr settings from files and the environment.

# Overview

Config wraps a decoded YAML, JSON or TOML document and provides typed
accessors that return a default when a key is missing or has the wrong type.
The catalog package uses it to read template definition files. Defaults
holds engine-wide settings read from PARAMSTR_* environment variables.

# Basic Usage

	cfg, err := config.FromFile("templates.yaml")
	if err != nil {
	    return err
	}

	defs, _ := cfg.List("templates")
	for _, def := range defs {
	    name := def.String("name", "")
	    pattern := def.String("pattern", "")
	    // ...
	}

# File Formats

FromFile selects the decoder by extension: .yaml and .yml use gopkg.in/yaml.v3,
.json uses encoding/json, .toml uses github.com/BurntSushi/toml. Numbers are
accepted as int, int64 or float64 whichever the decoder produced, and List
accepts both []any and []map[string]any.

# Environment

	PARAMSTR_OPEN_DELIM       open delimiter (default "{")
	PARAMSTR_CLOSE_DELIM      close delimiter (default "}")
	PARAMSTR_DEFAULT_VALUE    value rendered for unset parameters (default none)
	PARAMSTR_CONVERT_DEFAULT  store values equal to the default as absent
	PARAMSTR_WATCH_DEBOUNCE   catalog reload quiet period (default 100ms)

	d, err := config.LoadDefaults()

A "defaults" table in a definition file overrides these per file; see
Defaults.Merge.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
