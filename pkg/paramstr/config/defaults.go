package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Defaults holds engine-wide settings applied to templates that do not set
// their own. They are read from the environment by LoadDefaults and may be
// overridden per file by a "defaults" table (see Merge).
type Defaults struct {
	// Delimiters
	OpenDelim  string `env:"PARAMSTR_OPEN_DELIM" envDefault:"{"`
	CloseDelim string `env:"PARAMSTR_CLOSE_DELIM" envDefault:"}"`

	// DefaultValue is rendered for parameters without a value. Empty means none.
	DefaultValue   string `env:"PARAMSTR_DEFAULT_VALUE"`
	ConvertDefault bool   `env:"PARAMSTR_CONVERT_DEFAULT" envDefault:"false"`

	// WatchDebounce is the quiet period before a changed catalog file is reloaded.
	WatchDebounce time.Duration `env:"PARAMSTR_WATCH_DEBOUNCE" envDefault:"100ms"`
}

// DefaultDefaults returns the built-in settings, as if no environment
// variable were set.
func DefaultDefaults() Defaults {
	return Defaults{
		OpenDelim:     "{",
		CloseDelim:    "}",
		WatchDebounce: 100 * time.Millisecond,
	}
}

// LoadDefaults reads Defaults from the environment.
func LoadDefaults() (Defaults, error) {
	var d Defaults
	if err := env.Parse(&d); err != nil {
		return Defaults{}, fmt.Errorf("failed to parse defaults: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Defaults{}, fmt.Errorf("invalid defaults: %w", err)
	}
	return d, nil
}

// Validate checks that the settings can be used to compile templates.
func (d Defaults) Validate() error {
	var errs []error
	if strings.TrimSpace(d.OpenDelim) == "" {
		errs = append(errs, errors.New("PARAMSTR_OPEN_DELIM must not be blank"))
	}
	if strings.TrimSpace(d.CloseDelim) == "" {
		errs = append(errs, errors.New("PARAMSTR_CLOSE_DELIM must not be blank"))
	}
	if d.WatchDebounce < 0 {
		errs = append(errs, errors.New("PARAMSTR_WATCH_DEBOUNCE must not be negative"))
	}
	return errors.Join(errs...)
}

// Merge returns d overridden by the keys present in cfg:
// open, close, default, convert_default and watch_debounce.
func (d Defaults) Merge(cfg Config) Defaults {
	d.OpenDelim = cfg.String("open", d.OpenDelim)
	d.CloseDelim = cfg.String("close", d.CloseDelim)
	if cfg.Has("default") {
		d.DefaultValue = fmt.Sprint(cfg.Any("default", ""))
	}
	d.ConvertDefault = cfg.Bool("convert_default", d.ConvertDefault)
	d.WatchDebounce = cfg.Duration("watch_debounce", d.WatchDebounce)
	return d
}
