package records

import "fmt"

// MissingInputFileError is returned when an input record file does not exist.
type MissingInputFileError struct {
	Path string
}

func (e *MissingInputFileError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// MalformedRecordError is returned when a record file cannot be decoded or
// fails structural checks.
type MalformedRecordError struct {
	Path string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: %v", e.Path, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
