package paramstr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatch tests value recovery from matching inputs.
func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    map[string]string
	}{
		{
			name:    "file path",
			pattern: "{rootDir}/tmp/{parentDir}/{fileName}",
			input:   "/home/user/tmp/testDirectory/testFile.txt",
			want: map[string]string{
				"rootDir":   "/home/user",
				"parentDir": "testDirectory",
				"fileName":  "testFile.txt",
			},
		},
		{
			name:    "url with leading literal",
			pattern: "www.google.com/{search}/{page}",
			input:   "www.google.com/golang/2",
			want:    map[string]string{"search": "golang", "page": "2"},
		},
		{
			name:    "repeated parameter with equal values",
			pattern: "{a}-{a}",
			input:   "x-x",
			want:    map[string]string{"a": "x"},
		},
		{
			name:    "single parameter takes whole input",
			pattern: "{all}",
			input:   "anything / goes {here}",
			want:    map[string]string{"all": "anything / goes {here}"},
		},
		{
			name:    "trailing literal anchors at end",
			pattern: "{name}.gz",
			input:   "archive.tar.gz",
			want:    map[string]string{"name": "archive.tar"},
		},
		{
			name:    "interior literal matches first occurrence",
			pattern: "{key}={value}",
			input:   "a=b=c",
			want:    map[string]string{"key": "a", "value": "b=c"},
		},
		{
			name:    "empty values",
			pattern: "{a}/{b}",
			input:   "/x",
			want:    map[string]string{"a": "", "b": "x"},
		},
		{
			name:    "multi-byte text",
			pattern: "{city}→{country}",
			input:   "Köln→Deutschland",
			want:    map[string]string{"city": "Köln", "country": "Deutschland"},
		},
		{
			name:    "no parameters",
			pattern: "static",
			input:   "whatever",
			want:    map[string]string{},
		},
		{
			name:    "format does not affect matching",
			pattern: "report-{ DATE , yyyy-MM-dd }.csv",
			input:   "report-2024-01-31.csv",
			want:    map[string]string{"DATE": "2024-01-31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustCompile(tt.pattern).Match(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestMatch_Mismatch tests inputs that cannot be aligned.
func TestMatch_Mismatch(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		input    string
		offset   int
		conflict bool
	}{
		{"leading literal differs", "www.google.com/{search}", "www.bing.com/golang", 0, false},
		{"interior literal missing", "{a}/tmp/{b}", "foo/bar", 0, false},
		{"second interior literal missing", "{a}/{b}:{c}", "x/y", 2, false},
		{"trailing literal differs", "{name}.txt", "file.csv", 4, false},
		{"interior literal cut off by trailing literal", "{a}-{b}--", "x--", 0, false},
		{"repeated parameter conflict", "{a}-{a}", "x-y", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustCompile(tt.pattern).Match(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrPatternMismatch))

			var merr *MismatchError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, tt.offset, merr.Offset)
			assert.Equal(t, tt.input, merr.Input)
			assert.Equal(t, tt.pattern, merr.Pattern)
			assert.Equal(t, tt.conflict, merr.Conflict())
		})
	}
}

func TestMatch_ConflictDetails(t *testing.T) {
	_, err := MustCompile("/{id}/items/{id}").Match("/7/items/8")
	require.Error(t, err)

	var merr *MismatchError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "id", merr.Name)
	assert.Equal(t, "7", merr.First)
	assert.Equal(t, "8", merr.Second)
	assert.Equal(t, 9, merr.Offset)
	assert.Equal(t,
		"input does not match pattern \"/{id}/items/{id}\": parameter 'id' matched both \"7\" and \"8\"\n"+
			"/7/items/8\n"+
			"         ^",
		err.Error())
}

func TestMatch_ErrorMessage(t *testing.T) {
	_, err := MustCompile("{a}/tmp/{b}").Match("foo/bar")
	require.Error(t, err)
	assert.Equal(t,
		"input does not match pattern \"{a}/tmp/{b}\": expected \"/tmp/\" after parameter 'a'\n"+
			"foo/bar\n"+
			"^",
		err.Error())
}

// TestMatch_RoundTrip verifies that rendering then matching recovers the values.
func TestMatch_RoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		vars    map[string]any
	}{
		{"{a}/{b}", map[string]any{"a": "X", "b": "Y"}},
		{"{rootDir}/tmp/{parentDir}/{fileName}", map[string]any{"rootDir": "/var", "parentDir": "cache", "fileName": "f.bin"}},
		{"https://{host}:{port}/v1/{resource}?id={id}", map[string]any{"host": "api.local", "port": 443, "resource": "users", "id": 12}},
		{"{one}www.google.com/{one}//{two}//{one}", map[string]any{"one": "pen", "two": "hello"}},
		{"<{tag}>{body}</{tag}>", map[string]any{"tag": "b", "body": "bold text"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tmpl := MustCompile(tt.pattern)
			rendered := tmpl.Render(tt.vars)

			got, err := tmpl.Match(rendered)
			require.NoError(t, err)

			want := make(map[string]string, len(tt.vars))
			for k, v := range tt.vars {
				want[k] = fmt.Sprint(v)
			}
			assert.Equal(t, want, got)
		})
	}
}
