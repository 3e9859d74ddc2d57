package output

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned by the registry for an unregistered format
// identifier.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrTemplateNotFound is returned when a named template is neither a built-in
// nor supplied inline.
var ErrTemplateNotFound = errors.New("template not found")

// UnsupportedSubFormatError indicates the formatter recognizes the format but
// not the requested variant.
type UnsupportedSubFormatError struct {
	Format    string
	SubFormat string
}

func (e *UnsupportedSubFormatError) Error() string {
	return fmt.Sprintf("formatter %q does not support sub-format %q", e.Format, e.SubFormat)
}

// RenderError indicates missing or invalid renderer-specific options or a
// failure during rendering itself.
type RenderError struct {
	Format string
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rendering %s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("rendering %s: %s", e.Format, e.Reason)
}

func (e *RenderError) Unwrap() error { return e.Err }
