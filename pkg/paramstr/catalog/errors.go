package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no template is registered under the name.
	ErrNotFound = errors.New("template not found")

	// ErrInvalidDefinition indicates a definition that cannot be registered.
	ErrInvalidDefinition = errors.New("invalid template definition")

	// ErrDuplicateName indicates two definitions in one load share a name.
	ErrDuplicateName = errors.New("duplicate template name")
)

// DefinitionError reports which definition of a load failed.
type DefinitionError struct {
	// Index is the position of the definition in the templates list, or -1
	// when the definition was registered directly.
	Index int
	Name  string
	Err   error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("template %q: %v", e.Name, e.Err)
	}
	if e.Name == "" {
		return fmt.Sprintf("templates[%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("templates[%d] %q: %v", e.Index, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}
