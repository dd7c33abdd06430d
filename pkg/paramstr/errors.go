package paramstr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for template construction and use.
var (
	// ErrInvalidArgument indicates a blank or missing construction input
	// (pattern, open delimiter or close delimiter).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPattern indicates a malformed pattern: adjacent parameters
	// or a blank format after a comma.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrUnknownParameter indicates a parameter name that is not part of the pattern.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrPatternMismatch indicates an input that cannot be aligned to the pattern.
	ErrPatternMismatch = errors.New("input does not match pattern")
)

// PatternError describes a malformed pattern and where the problem is.
type PatternError struct {
	// Pattern is the pattern being compiled.
	Pattern string
	// Offset is the byte offset in Pattern the caret points at.
	Offset int
	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
// The message ends with the offending line of the pattern and a caret under Offset.
func (e *PatternError) Error() string {
	return fmt.Sprintf("%s: %s\n%s", ErrInvalidPattern, e.Reason, caret(e.Pattern, e.Offset))
}

// Unwrap returns ErrInvalidPattern for errors.Is support.
func (e *PatternError) Unwrap() error {
	return ErrInvalidPattern
}

// MismatchError describes why an input could not be matched against a pattern.
type MismatchError struct {
	// Input is the text passed to Parse.
	Input string
	// Pattern is the original pattern.
	Pattern string
	// Offset is the byte offset in Input the caret points at.
	Offset int
	// Reason describes the problem.
	Reason string

	// Name, First and Second are set when a repeated parameter captured
	// two different values.
	Name   string
	First  string
	Second string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s %q: %s\n%s", ErrPatternMismatch, e.Pattern, e.Reason, caret(e.Input, e.Offset))
}

// Unwrap returns ErrPatternMismatch for errors.Is support.
func (e *MismatchError) Unwrap() error {
	return ErrPatternMismatch
}

// Conflict reports whether the mismatch was caused by a repeated parameter
// capturing two different values.
func (e *MismatchError) Conflict() bool {
	return e.Name != ""
}

// UnknownParameterError is returned when a parameter name is not in the pattern.
type UnknownParameterError struct {
	Name      string
	Pattern   string
	Available []string
}

// Error implements the error interface.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("%s '%s' not found in %s. Available parameters: [%s]",
		ErrUnknownParameter, e.Name, e.Pattern, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrUnknownParameter for errors.Is support.
func (e *UnknownParameterError) Unwrap() error {
	return ErrUnknownParameter
}

// caret returns the line of text containing offset, followed by a line with
// a '^' under the character at offset. Offsets past the end point just after
// the last character.
func caret(text string, offset int) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}

	line := text[lineStart:lineEnd]
	pad := utf8.RuneCountInString(text[lineStart:offset])
	return line + "\n" + strings.Repeat(" ", pad) + "^"
}
