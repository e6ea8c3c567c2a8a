package ingestion

import "fmt"

// UnsupportedTypeError is returned when a document's type has no extractor.
type UnsupportedTypeError struct {
	Filename string
	MIMEType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("unsupported file type %q for %s", e.MIMEType, e.Filename)
	}
	return fmt.Sprintf("unsupported file type %q", e.MIMEType)
}

// ParseError is returned when a supported document could not be read.
type ParseError struct {
	Format string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Format, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
