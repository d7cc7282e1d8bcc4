package downloader

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
)

// Fetcher downloads a batch of URLs with bounded concurrency. A single
// Fetcher owns one connection-pooling HTTP client that every transfer
// shares; Run may be called from any goroutine.
type Fetcher struct {
	client       *http.Client
	concurrency  int64
	chunkSize    int
	rootPath     string
	showProgress bool
	debug        bool

	// Hook, when set, observes every outcome as it is collected.
	Hook Hook
}

// NewFetcher creates a Fetcher from config, applying defaults for any
// zero fields.
func NewFetcher(config *Config) *Fetcher {
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.RootPath == "" {
		config.RootPath = "."
	}
	if config.RetryWaitMax == 0 {
		config.RetryWaitMax = 10 * time.Second
	}
	if config.RetryWaitMin == 0 {
		config.RetryWaitMin = 1 * time.Second
	}

	retryablehttpClient := retryablehttp.NewClient()
	retryablehttpClient.RetryMax = config.RetryMax
	retryablehttpClient.RetryWaitMax = config.RetryWaitMax
	retryablehttpClient.RetryWaitMin = config.RetryWaitMin
	if config.Debug {
		retryablehttpClient.Logger = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		retryablehttpClient.Logger = nil
	}

	client := retryablehttpClient.StandardClient()
	client.Timeout = config.Timeout

	return &Fetcher{
		client:       client,
		concurrency:  int64(config.Concurrency),
		chunkSize:    config.ChunkSize,
		rootPath:     config.RootPath,
		showProgress: config.ShowProgress,
		debug:        config.Debug,
	}
}

// Run downloads every URL and reports the tally. It returns only after
// each scheduled transfer has reached a terminal outcome: a failed
// transfer is recorded and never aborts the rest of the batch.
// Cancelling ctx fails the transfers that have not finished yet, but
// Run still waits for all of them before returning.
func (f *Fetcher) Run(ctx context.Context, urls []string) *BatchResult {
	result := &BatchResult{Attempted: len(urls)}
	if len(urls) == 0 {
		return result
	}

	if f.debug {
		log.Println("Number of concurrency:", f.concurrency)
	}

	sem := semaphore.NewWeighted(f.concurrency)
	outcomes := make(chan Outcome, len(urls))
	wg := sync.WaitGroup{}

	for _, url := range urls {
		url := url
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes <- f.download(ctx, sem, url)
		}()
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if f.Hook != nil {
			f.Hook(outcome)
		}
		if outcome.Err != nil {
			result.Failed = append(result.Failed, Failure{URL: outcome.URL, Err: outcome.Err})
			continue
		}
		result.Succeeded = append(result.Succeeded, outcome.Path)
		result.Bytes += outcome.Bytes
	}

	return result
}

// download produces the single outcome for one URL. The slot is
// acquired before any network I/O and released on every path out.
func (f *Fetcher) download(ctx context.Context, sem *semaphore.Weighted, url string) Outcome {
	outcome := Outcome{URL: url}

	path, err := DerivePath(url)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Path = path

	if err := sem.Acquire(ctx, 1); err != nil {
		outcome.Err = fmt.Errorf("acquire download slot: %w", err)
		return outcome
	}
	defer sem.Release(1)

	outcome.Bytes, outcome.Err = f.transfer(ctx, Target{URL: url, Path: path})
	return outcome
}

// transfer streams one URL to its target path under the root. It makes
// a single GET and produces a single result: a non-2xx response fails
// this target before anything is written, and an I/O error mid-stream
// leaves the partial file as is.
func (f *Fetcher) transfer(ctx context.Context, target Target) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, &StatusError{Code: resp.StatusCode}
	}

	path := filepath.Join(f.rootPath, filepath.FromSlash(target.Path))
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return 0, err
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	if f.debug {
		log.Println("downloading", target.Path)
	}

	bar := f.newBar(resp.ContentLength, target.Path)
	defer bar.Close()

	buffer := make([]byte, f.chunkSize)
	written, err := io.CopyBuffer(io.MultiWriter(file, bar), resp.Body, buffer)
	if err != nil {
		return written, err
	}

	return written, nil
}

// newBar builds the per-transfer progress bar, keyed by the target path
// and sized from the Content-Length header (-1 renders a spinner when
// the total is unknown).
func (f *Fetcher) newBar(size int64, target string) *progressbar.ProgressBar {
	if f.showProgress {
		return progressbar.DefaultBytes(size, target)
	}
	return progressbar.DefaultBytesSilent(size, target)
}
