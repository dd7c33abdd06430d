package paramstr

import (
	"fmt"
	"strings"
)

// Match recovers the parameter values that turn the pattern into input.
// It does not use or change any Pattern state.
//
// Literal segments anchor the match: the text before the first parameter
// must start the input, the text after the last parameter must end it, and
// every segment in between matches its first occurrence after the previous
// one. The text between two anchors is the value of the parameter there.
//
// A parameter that appears more than once must capture the same text each
// time. Returns a *MismatchError (ErrPatternMismatch) when the input cannot
// be aligned. A pattern without parameters matches anything and yields an
// empty map.
//
// Example:
//
//	t := paramstr.MustCompile("{rootDir}/tmp/{parentDir}/{fileName}")
//	t.Match("/home/user/tmp/testDirectory/testFile.txt")
//	// map[fileName:testFile.txt parentDir:testDirectory rootDir:/home/user]
func (t *Template) Match(input string) (map[string]string, error) {
	captures := make(map[string]string, len(t.names))
	n := len(t.occurrences)
	if n == 0 {
		return captures, nil
	}

	lead := t.segments[0]
	if !strings.HasPrefix(input, lead) {
		return nil, t.mismatch(input, 0, fmt.Sprintf("expected input to start with %q", lead))
	}
	cursor := len(lead)

	// The trailing segment is matched at the very end so the last
	// parameter extends up to it. Interior segments must fit before it.
	tail := t.segments[n]
	limit := len(input) - len(tail)
	tailOK := limit >= cursor && strings.HasSuffix(input, tail)
	if !tailOK {
		limit = len(input)
	}

	for k := 1; k < n; k++ {
		seg := t.segments[k]
		i := strings.Index(input[cursor:limit], seg)
		if i < 0 {
			return nil, t.mismatch(input, cursor,
				fmt.Sprintf("expected %q after parameter '%s'", seg, t.occurrences[k-1].Name))
		}
		if err := t.capture(captures, input, k-1, cursor, cursor+i); err != nil {
			return nil, err
		}
		cursor += i + len(seg)
	}

	if !tailOK {
		offset := len(input) - len(tail)
		if offset < cursor {
			offset = cursor
		}
		return nil, t.mismatch(input, offset,
			fmt.Sprintf("expected %q after parameter '%s'", tail, t.occurrences[n-1].Name))
	}
	if err := t.capture(captures, input, n-1, cursor, limit); err != nil {
		return nil, err
	}

	return captures, nil
}

// capture records input[start:end] as the value of occurrence idx, checking
// it against an earlier capture of the same name.
func (t *Template) capture(captures map[string]string, input string, idx, start, end int) error {
	name := t.occurrences[idx].Name
	value := input[start:end]

	prev, seen := captures[name]
	if seen && prev != value {
		err := t.mismatch(input, start, fmt.Sprintf(
			"parameter '%s' matched both %q and %q", name, prev, value))
		err.Name = name
		err.First = prev
		err.Second = value
		return err
	}
	captures[name] = value
	return nil
}

func (t *Template) mismatch(input string, offset int, reason string) *MismatchError {
	return &MismatchError{
		Input:   input,
		Pattern: t.raw,
		Offset:  offset,
		Reason:  reason,
	}
}
