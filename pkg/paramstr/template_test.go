package paramstr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile_Parameters tests parameter discovery.
func TestCompile_Parameters(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    []Option
		want    []string
	}{
		{
			name:    "single parameter",
			pattern: "www.google.com/{search}",
			want:    []string{"search"},
		},
		{
			name:    "multiple parameters",
			pattern: "www.google.com/{search}/{testing}",
			want:    []string{"search", "testing"},
		},
		{
			name:    "no parameters",
			pattern: "www.google.com",
			want:    []string{},
		},
		{
			name:    "unclosed open delimiters",
			pattern: "www.google.com/{incomplete{",
			want:    []string{},
		},
		{
			name:    "repeated parameter listed once",
			pattern: "zero/{one}/{two}/{one}",
			want:    []string{"one", "two"},
		},
		{
			name:    "names are trimmed",
			pattern: "/users/{ id }/",
			want:    []string{"id"},
		},
		{
			name:    "blank body is literal",
			pattern: "a{}b{ }c{d}",
			want:    []string{"d"},
		},
		{
			name:    "custom delimiters",
			pattern: "www.google.com/(normal)/{curly}",
			opts:    []Option{WithDelimiters("(", ")")},
			want:    []string{"normal"},
		},
		{
			name:    "multi-character delimiters",
			pattern: "Hello {{ name }}, {single}!",
			opts:    []Option{WithDelimiters("{{", "}}")},
			want:    []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.pattern, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Names())
			for _, name := range tt.want {
				assert.True(t, tmpl.Contains(name))
			}
			assert.Equal(t, tt.pattern, tmpl.String())
		})
	}
}

// TestCompile_Errors tests construction failures.
func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		opts    []Option
		wantErr error
	}{
		{"blank pattern", "   ", nil, ErrInvalidArgument},
		{"empty pattern", "", nil, ErrInvalidArgument},
		{"blank open delimiter", "{a}", []Option{WithDelimiters(" ", "}")}, ErrInvalidArgument},
		{"blank close delimiter", "{a}", []Option{WithDelimiters("{", "")}, ErrInvalidArgument},
		{"adjacent parameters", "{a}{b}", nil, ErrInvalidPattern},
		{"adjacent after text", "www.google.com/{one}{two}", nil, ErrInvalidPattern},
		{"adjacent same name", "{a}{a}", nil, ErrInvalidPattern},
		{"blank format", "{a, }", nil, ErrInvalidPattern},
		{"blank name before format", "{ ,yyyy}", nil, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.pattern, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, tmpl)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCompile_SeparatedParametersAccepted(t *testing.T) {
	tmpl, err := Compile("{a}/{b}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tmpl.Names())
}

// TestCompile_ErrorCaret verifies the error shows where the pattern is wrong.
func TestCompile_ErrorCaret(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
		offset  int
	}{
		{
			name:    "adjacent parameters",
			pattern: "{a}{b}",
			want: "invalid pattern: parameters 'a' and 'b' must be separated by at least one character\n" +
				"{a}{b}\n" +
				"   ^",
			offset: 3,
		},
		{
			name:    "blank format points at comma",
			pattern: "/x/{date, }",
			want: "invalid pattern: expected formatting parameter after ',' in 'date,'\n" +
				"/x/{date, }\n" +
				"        ^",
			offset: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			require.Error(t, err)

			var perr *PatternError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.offset, perr.Offset)
			assert.Equal(t, tt.pattern, perr.Pattern)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

// TestCompile_Format tests the optional format after a comma.
func TestCompile_Format(t *testing.T) {
	tmpl, err := Compile("{ DATE , mmm dd, yyyy }")
	require.NoError(t, err)

	assert.Equal(t, []string{"DATE"}, tmpl.Names())
	format, err := tmpl.Format("DATE")
	require.NoError(t, err)
	assert.Equal(t, "mmm dd, yyyy", format)

	tmpl, err = Compile("{day}/{month,MM}")
	require.NoError(t, err)

	format, err = tmpl.Format("day")
	require.NoError(t, err)
	assert.Empty(t, format)

	format, err = tmpl.Format("month")
	require.NoError(t, err)
	assert.Equal(t, "MM", format)

	_, err = tmpl.Format("year")
	assert.ErrorIs(t, err, ErrUnknownParameter)
}

// TestCompile_Segments tests the segment/occurrence layout.
func TestCompile_Segments(t *testing.T) {
	tests := []struct {
		name         string
		pattern      string
		segments     []string
		occurrences  int
		leadingEmpty bool
	}{
		{"leading parameter", "{a}/{b}", []string{"", "/", ""}, 2, true},
		{"surrounded parameter", "x{a}y", []string{"x", "y"}, 1, false},
		{"no parameters", "no params", []string{"no params"}, 0, false},
		{"single parameter", "{a}", []string{"", ""}, 1, true},
		{"blank body kept in segment", "a{}b{c}", []string{"a{}b", ""}, 1, false},
		{"unclosed kept in segment", "{a}/{b", []string{"", "/{b"}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.segments, tmpl.Segments())
			assert.Len(t, tmpl.Occurrences(), tt.occurrences)
			assert.Len(t, tmpl.Segments(), len(tmpl.Occurrences())+1)
			assert.Equal(t, tt.leadingEmpty, tmpl.LeadingEmpty())
		})
	}
}

func TestCompile_Offsets(t *testing.T) {
	tmpl, err := Compile("www/{one}//{two, x}")
	require.NoError(t, err)

	assert.Equal(t, []Occurrence{
		{Name: "one", Start: 4, End: 9},
		{Name: "two", Start: 11, End: 19, Format: "x"},
	}, tmpl.Occurrences())

	open, closeDelim := tmpl.Delimiters()
	assert.Equal(t, "{", open)
	assert.Equal(t, "}", closeDelim)
}

// TestTemplate_IndexAndContent tests the offsets around the parameter region.
func TestTemplate_IndexAndContent(t *testing.T) {
	tmpl, err := Compile("http://host/{a}/x/{b}.json")
	require.NoError(t, err)

	assert.Equal(t, 12, tmpl.IndexBeforeFirstParameter())
	assert.Equal(t, 21, tmpl.IndexAfterLastParameter())
	assert.Equal(t, "http://host/", tmpl.ContentBeforeFirstParameter())
	assert.Equal(t, ".json", tmpl.ContentAfterLastParameter())

	tmpl, err = Compile("http://host/static")
	require.NoError(t, err)

	assert.Equal(t, -1, tmpl.IndexBeforeFirstParameter())
	assert.Equal(t, -1, tmpl.IndexAfterLastParameter())
	assert.Equal(t, "http://host/static", tmpl.ContentBeforeFirstParameter())
	assert.Empty(t, tmpl.ContentAfterLastParameter())
}

// TestTemplate_Render tests stateless rendering.
func TestTemplate_Render(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		vars     map[string]any
		expected string
	}{
		{
			name:     "all parameters",
			pattern:  "{scheme}://{host}:{port}/api",
			vars:     map[string]any{"scheme": "https", "host": "example.com", "port": 8080},
			expected: "https://example.com:8080/api",
		},
		{
			name:     "missing parameter kept",
			pattern:  "zero/{one}/{two}/{one}",
			vars:     map[string]any{"one": 27},
			expected: "zero/27/{two}/27",
		},
		{
			name:     "nil value kept",
			pattern:  "{a}/{b}",
			vars:     map[string]any{"a": nil, "b": "x"},
			expected: "{a}/x",
		},
		{
			name:     "nil vars",
			pattern:  "{a}/{b}",
			vars:     nil,
			expected: "{a}/{b}",
		},
		{
			name:     "original parameter text kept",
			pattern:  "{ DATE , yyyy }!",
			vars:     nil,
			expected: "{ DATE , yyyy }!",
		},
		{
			name:     "blank body untouched",
			pattern:  "{}-{a}",
			vars:     map[string]any{"a": true},
			expected: "{}-true",
		},
		{
			name:     "no parameters",
			pattern:  "static",
			vars:     map[string]any{"a": 1},
			expected: "static",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := MustCompile(tt.pattern)
			assert.Equal(t, tt.expected, tmpl.Render(tt.vars))
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile("{a}{b}")
	})
	assert.NotPanics(t, func() {
		MustCompile("{a}-{b}")
	})
}
