package wts

import "fmt"

// FormatError reports an input file that does not have the fixed report layout.
// It is fatal to a run.
type FormatError struct {
	File   string // File name, may be empty when reading from a stream.
	Reason string // The structural expectation that was violated.
}

func (e *FormatError) Error() string {
	if e.File == "" {
		return "invalid report format: " + e.Reason
	}
	return fmt.Sprintf("invalid report format in %s: %s", e.File, e.Reason)
}

// EmptyResultError reports a pipeline stage that produced no record at all.
type EmptyResultError struct {
	Stage  string
	Detail string
}

func (e *EmptyResultError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s produced no records", e.Stage)
	}
	return fmt.Sprintf("%s produced no records: %s", e.Stage, e.Detail)
}
