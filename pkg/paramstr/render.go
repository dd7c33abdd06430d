package paramstr

import (
	"fmt"
	"strings"
)

// Render returns the pattern with every parameter found in vars replaced by
// the value's textual form (fmt.Sprint). Parameters missing from vars, or
// mapped to nil, keep their original text.
//
// Render does not use or change any Pattern state, so it is safe for
// concurrent use.
//
// Example:
//
//	t := paramstr.MustCompile("zero/{one}/{two}/{one}")
//	t.Render(map[string]any{"one": 27}) // "zero/27/{two}/27"
func (t *Template) Render(vars map[string]any) string {
	return t.render(func(name string) (any, bool) {
		v, ok := vars[name]
		return v, ok && v != nil
	})
}

// render builds the output from the segments and occurrence offsets. All
// offsets refer to the raw pattern, never to the output being built, so a
// substitution cannot shift the position of another occurrence.
func (t *Template) render(lookup func(name string) (any, bool)) string {
	if len(t.occurrences) == 0 {
		return t.raw
	}

	var b strings.Builder
	b.Grow(len(t.raw))
	for i, occ := range t.occurrences {
		b.WriteString(t.segments[i])
		if v, ok := lookup(occ.Name); ok {
			b.WriteString(fmt.Sprint(v))
		} else {
			b.WriteString(t.raw[occ.Start:occ.End])
		}
	}
	b.WriteString(t.segments[len(t.segments)-1])
	return b.String()
}
