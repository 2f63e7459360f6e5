package markdown

import (
	"errors"
	"fmt"
)

// ParseError reports a document that could not be split or rendered.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("markdown: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a frontmatter field with an unsupported shape.
type ValidationError struct {
	Path   string
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("markdown: %s: invalid %q (%T): %s", e.Path, e.Field, e.Value, e.Reason)
}

// IsParseError checks if the error is a parse failure.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsValidationError checks if the error is a metadata validation failure.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
