/*
Package paramstr provides strings with named parameters that can be both
rendered and parsed.

# Overview

A pattern such as "{rootDir}/tmp/{parentDir}/{fileName}" is compiled once
into a Template: the literal segments between parameters plus the position
of every parameter occurrence. A Pattern pairs a Template with parameter
values. Apply substitutes the values into the pattern; Parse does the
reverse and recovers the values from a string produced by the pattern.

# Basic Usage

	p, err := paramstr.New("{rootDir}/tmp/{parentDir}/{fileName}")
	if err != nil {
	    return err
	}

	p.Set("rootDir", "/home/user")
	p.Set("fileName", "notes.txt")
	p.Apply() // "/home/user/tmp/{parentDir}/notes.txt"

	values, err := p.Parse("/home/user/tmp/testDirectory/testFile.txt")
	// values: rootDir=/home/user parentDir=testDirectory fileName=testFile.txt

# Pattern Syntax

Parameters are enclosed in "{" and "}" by default; WithDelimiters selects
other delimiters. The parameter name is trimmed. Text after the first comma
is a format hint available through Format:

	p, _ := paramstr.New("{ DATE , mmm dd, yyyy }")
	p.Names()         // [DATE]
	p.Format("DATE")  // "mmm dd, yyyy"

An open delimiter without a matching close delimiter, or with a blank body,
is plain text. Two parameters must be separated by at least one character,
since Parse could not tell where one value ends and the next begins:

	_, err := paramstr.New("{a}{b}")
	// invalid pattern: parameters 'a' and 'b' must be separated by at least one character
	// {a}{b}
	//    ^

# Parsing

Parse anchors on the literal segments: the text before the first parameter
must start the input, the text after the last parameter must end it, and
each segment in between matches its first occurrence. A parameter used more
than once must capture the same text each time. When the input does not
match, the values are cleared and a *MismatchError points at the offending
position.

# Default Values

WithDefaultValue (or SetDefaultValue) sets a value rendered for parameters
without one. With WithConvertDefaultToAbsent, values equal to the default
are stored as absent, so parsing a rendered string does not turn defaults
into explicit values.

# Errors

All errors wrap one of ErrInvalidArgument, ErrInvalidPattern,
ErrUnknownParameter or ErrPatternMismatch for use with errors.Is.

# Thread Safety

Template is immutable and safe for concurrent use. Pattern is not; give each
goroutine its own Clone, which shares the Template and copies the values.
*/
package paramstr
