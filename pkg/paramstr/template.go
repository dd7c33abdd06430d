package paramstr

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/paramstr/pkg/paramstr/observability"
)

// Occurrence is one appearance of a parameter in a pattern.
type Occurrence struct {
	// Name is the parameter name with surrounding whitespace removed.
	Name string
	// Start and End are the half-open byte range in the pattern covering
	// the open delimiter, the body and the close delimiter.
	Start int
	End   int
	// Format is the text after the first comma in the body, trimmed.
	// Empty when the body has no comma.
	Format string
}

// Template is a compiled pattern. It is immutable and safe for concurrent
// use; any number of Patterns may share one Template.
//
// A Template always has one more segment than occurrences. The first and
// last segments may be empty; segments between two occurrences never are.
type Template struct {
	raw         string
	openDelim   string
	closeDelim  string
	occurrences []Occurrence
	segments    []string
	names       []string
	nameSet     map[string]struct{}
}

// Compile parses pattern into a Template.
//
// Parameters are delimited by "{" and "}" unless WithDelimiters is given.
// A parameter body may carry a format after a comma: "{DATE, yyyy-MM-dd}".
// An open delimiter without a matching close delimiter is literal text, as
// is a blank body such as "{}".
//
// Returns ErrInvalidArgument for a blank pattern or delimiter and a
// *PatternError (ErrInvalidPattern) when two parameters touch or a format
// is blank.
func Compile(pattern string, opts ...Option) (*Template, error) {
	o := applyOptions(opts)

	t, err := compile(pattern, o.openDelim, o.closeDelim)
	o.metrics.RecordCompile(context.Background(), t.paramCount(), err)
	if err != nil {
		observability.LogCompileError(o.logger, pattern, err)
		return nil, err
	}
	observability.LogCompile(o.logger, pattern, len(t.occurrences), len(t.names))
	return t, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string, opts ...Option) *Template {
	t, err := Compile(pattern, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramstr: %v", err))
	}
	return t
}

func compile(pattern, openDelim, closeDelim string) (*Template, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: input string must not be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(openDelim) == "" {
		return nil, fmt.Errorf("%w: open delimiter must not be blank", ErrInvalidArgument)
	}
	if strings.TrimSpace(closeDelim) == "" {
		return nil, fmt.Errorf("%w: close delimiter must not be blank", ErrInvalidArgument)
	}

	t := &Template{
		raw:        pattern,
		openDelim:  openDelim,
		closeDelim: closeDelim,
		nameSet:    make(map[string]struct{}),
	}

	segStart := 0
	x := 0
	for {
		i := strings.Index(pattern[x:], openDelim)
		if i < 0 {
			break
		}
		openAt := x + i
		bodyAt := openAt + len(openDelim)

		j := strings.Index(pattern[bodyAt:], closeDelim)
		if j < 0 {
			// Unclosed: the open delimiter is literal text.
			x = bodyAt
			continue
		}
		closeAt := bodyAt + j
		end := closeAt + len(closeDelim)

		body := pattern[bodyAt:closeAt]
		if strings.TrimSpace(body) == "" {
			x = end
			continue
		}

		occ, err := parseBody(pattern, body, bodyAt)
		if err != nil {
			return nil, err
		}
		occ.Start = openAt
		occ.End = end

		if n := len(t.occurrences); n > 0 && t.occurrences[n-1].End == openAt {
			prev := t.occurrences[n-1]
			return nil, &PatternError{
				Pattern: pattern,
				Offset:  openAt,
				Reason: fmt.Sprintf("parameters '%s' and '%s' must be separated by at least one character",
					prev.Name, occ.Name),
			}
		}

		t.segments = append(t.segments, pattern[segStart:openAt])
		t.occurrences = append(t.occurrences, occ)
		if _, seen := t.nameSet[occ.Name]; !seen {
			t.nameSet[occ.Name] = struct{}{}
			t.names = append(t.names, occ.Name)
		}

		segStart = end
		x = end
	}
	t.segments = append(t.segments, pattern[segStart:])

	return t, nil
}

// parseBody splits a parameter body into name and format. bodyAt is the
// offset of body in pattern, used to point at a blank format.
func parseBody(pattern, body string, bodyAt int) (Occurrence, error) {
	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		return Occurrence{Name: strings.TrimSpace(body)}, nil
	}

	name := strings.TrimSpace(body[:comma])
	if name == "" {
		return Occurrence{}, &PatternError{
			Pattern: pattern,
			Offset:  bodyAt,
			Reason:  fmt.Sprintf("expected parameter name before ',' in '%s'", strings.TrimSpace(body)),
		}
	}
	format := strings.TrimSpace(body[comma+1:])
	if format == "" {
		return Occurrence{}, &PatternError{
			Pattern: pattern,
			Offset:  bodyAt + comma,
			Reason:  fmt.Sprintf("expected formatting parameter after ',' in '%s'", strings.TrimSpace(body)),
		}
	}
	return Occurrence{Name: name, Format: format}, nil
}

// paramCount is nil-safe so failed compiles can still be recorded.
func (t *Template) paramCount() int {
	if t == nil {
		return 0
	}
	return len(t.occurrences)
}

// String returns the original pattern.
func (t *Template) String() string {
	return t.raw
}

// Delimiters returns the open and close delimiters.
func (t *Template) Delimiters() (openDelim, closeDelim string) {
	return t.openDelim, t.closeDelim
}

// Names returns the distinct parameter names in order of first appearance.
func (t *Template) Names() []string {
	result := make([]string, len(t.names))
	copy(result, t.names)
	return result
}

// Contains reports whether name is a parameter of the template.
func (t *Template) Contains(name string) bool {
	_, ok := t.nameSet[name]
	return ok
}

// Format returns the format of the first occurrence of name, or "" if it has none.
// Returns an *UnknownParameterError if name is not a parameter.
func (t *Template) Format(name string) (string, error) {
	if err := t.validateName(name); err != nil {
		return "", err
	}
	for _, occ := range t.occurrences {
		if occ.Name == name {
			return occ.Format, nil
		}
	}
	return "", nil
}

// Occurrences returns the parameter occurrences in pattern order.
func (t *Template) Occurrences() []Occurrence {
	result := make([]Occurrence, len(t.occurrences))
	copy(result, t.occurrences)
	return result
}

// Segments returns the literal text around the occurrences, in pattern order.
// The result always has len(Occurrences())+1 entries.
func (t *Template) Segments() []string {
	result := make([]string, len(t.segments))
	copy(result, t.segments)
	return result
}

// LeadingEmpty reports whether the pattern starts with a parameter, so the
// first segment is empty.
func (t *Template) LeadingEmpty() bool {
	return len(t.occurrences) > 0 && t.occurrences[0].Start == 0
}

// IndexBeforeFirstParameter returns the offset where the first parameter
// starts, or -1 if the pattern has no parameters.
func (t *Template) IndexBeforeFirstParameter() int {
	if len(t.occurrences) == 0 {
		return -1
	}
	return t.occurrences[0].Start
}

// IndexAfterLastParameter returns the offset just past the last parameter,
// or -1 if the pattern has no parameters.
func (t *Template) IndexAfterLastParameter() int {
	if len(t.occurrences) == 0 {
		return -1
	}
	return t.occurrences[len(t.occurrences)-1].End
}

// ContentBeforeFirstParameter returns the text before the first parameter.
// The whole pattern is returned when there are no parameters.
func (t *Template) ContentBeforeFirstParameter() string {
	return t.segments[0]
}

// ContentAfterLastParameter returns the text after the last parameter.
// An empty string is returned when there are no parameters.
func (t *Template) ContentAfterLastParameter() string {
	if len(t.occurrences) == 0 {
		return ""
	}
	return t.segments[len(t.segments)-1]
}

func (t *Template) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: parameter name must not be blank", ErrInvalidArgument)
	}
	if !t.Contains(name) {
		return &UnknownParameterError{Name: name, Pattern: t.raw, Available: t.Names()}
	}
	return nil
}
