package downloader

import "time"

const (
	// DefaultConcurrency bounds simultaneous transfers.
	DefaultConcurrency = 3

	// DefaultChunkSize is the copy buffer size for streaming a response
	// body to disk.
	DefaultChunkSize = 8192
)

type Config struct {
	Concurrency  int           // maximum transfers in flight at once
	ChunkSize    int           // copy buffer size in bytes
	RootPath     string        // directory downloaded files are written under
	ShowProgress bool
	Timeout      time.Duration // bounds a single request, 0 means no limit
	RetryWaitMin time.Duration // Minimum time to wait between retries
	RetryWaitMax time.Duration // Maximum time to wait between retries
	RetryMax     int           // Maximum number of retries, 0 disables retrying
	Debug        bool
}
