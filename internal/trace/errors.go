package trace

import "fmt"

// FormatError reports a malformed trace row.
type FormatError struct {
	Kind  string // discriminator of the record being parsed
	Row   int    // position within the filtered rows
	Field string
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("trace: %s row %d: %v", e.Kind, e.Row, e.Err)
	}
	return fmt.Sprintf("trace: %s row %d: field %s %q: %v", e.Kind, e.Row, e.Field, e.Token, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
