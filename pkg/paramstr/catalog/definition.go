package catalog

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/paramstr/pkg/paramstr"
	"github.com/randalmurphal/paramstr/pkg/paramstr/config"
)

// Definition describes a named template.
type Definition struct {
	Name    string
	Pattern string

	// Open and Close override the catalog delimiters when set.
	Open  string
	Close string

	// Default is rendered for parameters without a value. Nil falls back to
	// the catalog default value, if any.
	Default any

	// ConvertDefault stores values equal to Default as absent. The catalog
	// setting applies when false.
	ConvertDefault bool
}

// resolve fills unset fields from d.
func (def Definition) resolve(d config.Defaults) Definition {
	if def.Open == "" {
		def.Open = d.OpenDelim
	}
	if def.Close == "" {
		def.Close = d.CloseDelim
	}
	if def.Default == nil && d.DefaultValue != "" {
		def.Default = d.DefaultValue
	}
	def.ConvertDefault = def.ConvertDefault || d.ConvertDefault
	return def
}

func (def Definition) validate() error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if def.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", ErrInvalidDefinition)
	}
	return nil
}

// patternOptions returns the options that give a Pattern the default policy
// of this definition.
func (def Definition) patternOptions() []paramstr.Option {
	return []paramstr.Option{
		paramstr.WithDefaultValue(def.Default),
		paramstr.WithConvertDefaultToAbsent(def.ConvertDefault),
	}
}

// definitionFromConfig reads one entry of a templates list. Keys: name,
// pattern, open, close, default, convert_default.
func definitionFromConfig(cfg config.Config) Definition {
	return Definition{
		Name:           cfg.String("name", ""),
		Pattern:        cfg.String("pattern", ""),
		Open:           cfg.String("open", ""),
		Close:          cfg.String("close", ""),
		Default:        cfg.Any("default", nil),
		ConvertDefault: cfg.Bool("convert_default", false),
	}
}
