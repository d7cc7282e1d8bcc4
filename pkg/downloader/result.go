package downloader

import "fmt"

// Target pairs a source URL with the local path derived from it.
type Target struct {
	URL  string
	Path string
}

// Outcome is the terminal result of a single transfer. Err is nil on
// success. Every scheduled URL produces exactly one Outcome.
type Outcome struct {
	URL   string
	Path  string
	Bytes int64
	Err   error
}

func (o Outcome) Success() bool {
	return o.Err == nil
}

// Failure records why one URL could not be downloaded.
type Failure struct {
	URL string
	Err error
}

// BatchResult is the tally of a full batch run. It is complete once Run
// returns and is not written to afterwards.
type BatchResult struct {
	// Attempted equals the number of URLs handed to Run, whatever their
	// outcomes.
	Attempted int

	// Succeeded holds the local paths written, in completion order.
	Succeeded []string

	// Failed holds one entry per URL that produced no usable file.
	Failed []Failure

	// Bytes is the total written by successful transfers.
	Bytes int64
}

// StatusError reports a non-success HTTP response for one URL.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}
