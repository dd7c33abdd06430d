package paramstr

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// Pattern is a Template together with the values of its parameters.
//
// Use Set to assign values and Apply to render them; use Parse to recover
// values from a string produced by the pattern. Parameters without a value
// are not replaced, so "zero/{one}/{two}/{one}" with "one" set to 27 renders
// as "zero/27/{two}/27".
//
// Pattern is not safe for concurrent use. The Template is immutable and
// shared, so the usual way to reuse a pattern across goroutines is to fill
// one Pattern and hand each goroutine its own Clone.
type Pattern struct {
	tmpl    *Template
	values  *Values
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// New compiles pattern and returns a Pattern with no values set.
// See Compile for the pattern syntax and errors.
func New(pattern string, opts ...Option) (*Pattern, error) {
	o := applyOptions(opts)

	t, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}
	return newPattern(t, o), nil
}

// FromTemplate returns a Pattern backed by an already compiled Template.
// Delimiter options are ignored since t is already compiled.
func FromTemplate(t *Template, opts ...Option) *Pattern {
	return newPattern(t, applyOptions(opts))
}

func newPattern(t *Template, o options) *Pattern {
	return &Pattern{
		tmpl:    t,
		values:  newValues(o.defaultValue, o.convertDefault),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Template returns the compiled template backing this pattern.
func (p *Pattern) Template() *Template {
	return p.tmpl
}

// ValueStore returns a read-only view of the current values.
func (p *Pattern) ValueStore() *Values {
	return p.values
}

// String returns the original pattern. Parameters are never replaced.
func (p *Pattern) String() string {
	return p.tmpl.raw
}

// Names returns the distinct parameter names in order of first appearance.
func (p *Pattern) Names() []string {
	return p.tmpl.Names()
}

// Contains reports whether name is a parameter of the pattern.
func (p *Pattern) Contains(name string) bool {
	return p.tmpl.Contains(name)
}

// Format returns the format associated with a parameter, or "" if it has none.
func (p *Pattern) Format(name string) (string, error) {
	return p.tmpl.Format(name)
}

// Set assigns a value to a parameter. A nil value unsets it.
// Returns an *UnknownParameterError if name is not a parameter.
func (p *Pattern) Set(name string, value any) error {
	if err := p.tmpl.validateName(name); err != nil {
		return err
	}
	p.values.set(name, value)
	return nil
}

// SetAll assigns several values at once. Nothing is assigned unless every
// name is a parameter of the pattern.
func (p *Pattern) SetAll(values map[string]any) error {
	for name := range values {
		if err := p.tmpl.validateName(name); err != nil {
			return err
		}
	}
	for name, value := range values {
		p.values.set(name, value)
	}
	return nil
}

// Get returns the value of a parameter, or nil if it has no value.
// The default value is not applied.
// Returns an *UnknownParameterError if name is not a parameter.
func (p *Pattern) Get(name string) (any, error) {
	if err := p.tmpl.validateName(name); err != nil {
		return nil, err
	}
	return p.values.get(name), nil
}

// Values returns a copy of the current parameter values.
func (p *Pattern) Values() map[string]any {
	return p.values.snapshot()
}

// Apply returns the pattern with all known values substituted. Parameters
// without a value use the default value when one is set; otherwise their
// original text is kept.
//
// The result is cached until the next change of values.
func (p *Pattern) Apply() string {
	cached := !p.values.dirty
	if !cached {
		p.values.rendered = p.tmpl.render(p.values.resolve)
		p.values.dirty = false
	}
	p.metrics.RecordRender(context.Background(), cached)
	return p.values.rendered
}

// Parse extracts parameter values from input, stores them as if passed to
// Set and returns the captured text of every parameter.
//
// When input does not match, all values are cleared and a *MismatchError
// is returned. See Template.Match for the matching rules.
func (p *Pattern) Parse(input string) (map[string]string, error) {
	done := observability.TimedOperation()

	captures, err := p.tmpl.Match(input)
	p.metrics.RecordParse(context.Background(), done(), err)
	if err != nil {
		p.values.clear()
		observability.LogParseMismatch(p.logger, p.tmpl.raw, input, err)
		return nil, err
	}

	for _, name := range p.tmpl.names {
		p.values.set(name, captures[name])
	}
	return captures, nil
}

// ClearValues removes all parameter values.
func (p *Pattern) ClearValues() {
	p.values.clear()
}

// DefaultValue returns the value rendered for parameters without a value.
func (p *Pattern) DefaultValue() any {
	return p.values.defaultValue
}

// SetDefaultValue sets the value rendered for parameters without a value.
// A nil value removes the default. When default conversion is enabled,
// stored values equal to the new default are removed.
func (p *Pattern) SetDefaultValue(value any) {
	p.values.setDefault(value)
}

// SetConvertDefaultToAbsent controls whether values equal to the default
// value are stored as absent. Enabling it removes stored values equal to
// the current default.
func (p *Pattern) SetConvertDefaultToAbsent(enabled bool) {
	p.values.setConvertDefault(enabled)
}

// Clone returns a copy of this pattern with its own values. The Template is
// shared.
func (p *Pattern) Clone() *Pattern {
	return &Pattern{
		tmpl:    p.tmpl,
		values:  p.values.clone(),
		logger:  p.logger,
		metrics: p.metrics,
	}
}

// IndexBeforeFirstParameter returns the offset where the first parameter
// starts, or -1 if the pattern has no parameters.
func (p *Pattern) IndexBeforeFirstParameter() int {
	return p.tmpl.IndexBeforeFirstParameter()
}

// IndexAfterLastParameter returns the offset just past the last parameter,
// or -1 if the pattern has no parameters.
func (p *Pattern) IndexAfterLastParameter() int {
	return p.tmpl.IndexAfterLastParameter()
}

// ContentBeforeFirstParameter returns the pattern text before the first parameter.
func (p *Pattern) ContentBeforeFirstParameter() string {
	return p.tmpl.ContentBeforeFirstParameter()
}

// ContentAfterLastParameter returns the pattern text after the last parameter.
func (p *Pattern) ContentAfterLastParameter() string {
	return p.tmpl.ContentAfterLastParameter()
}
