package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/inhies/go-bytesize"
	"github.com/k0kubun/pp"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/spf13/cast"

	"github.com/mdsohelmia/backupgrab/pkg/downloader"
	"github.com/mdsohelmia/backupgrab/pkg/extractor"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("backupgrab", flag.ContinueOnError)
	concurrency := fs.Int("c", envInt("BACKUPGRAB_CONCURRENCY", downloader.DefaultConcurrency), "maximum simultaneous downloads")
	chunkSize := fs.Int("chunk", envInt("BACKUPGRAB_CHUNK_SIZE", downloader.DefaultChunkSize), "copy buffer size in bytes")
	rootPath := fs.String("dir", ".", "directory to download into")
	timeout := fs.Duration("timeout", 0, "per-download timeout (0 means no limit)")
	noProgress := fs.Bool("no-progress", false, "disable progress bars")
	debug := fs.Bool("debug", false, "verbose logging")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: backupgrab [flags] <saved-page.html>\n\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	links := extractor.New().ExtractFile(fs.Arg(0))
	if len(links) == 0 {
		fmt.Println("No backup links found, nothing to download")
		return 0
	}

	if *debug {
		logFreeSpace(*rootPath)
	}

	fetcher := downloader.NewFetcher(&downloader.Config{
		Concurrency:  *concurrency,
		ChunkSize:    *chunkSize,
		RootPath:     *rootPath,
		ShowProgress: !*noProgress,
		Timeout:      *timeout,
		Debug:        *debug,
	})
	// Hooks run serially on the collecting goroutine, so a plain counter
	// is enough for the aggregate indicator.
	completed := 0
	fetcher.Hook = func(outcome downloader.Outcome) {
		completed++
		if !outcome.Success() {
			fmt.Printf("[%d/%d] Failed %s: %v\n", completed, len(links), outcome.URL, outcome.Err)
			return
		}
		fmt.Printf("[%d/%d] Finished downloading %s\n", completed, len(links), outcome.Path)
	}

	result := fetcher.Run(ctx, links)

	if *debug {
		pp.Println(result)
	}
	printSummary(result)

	if ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "Interrupted")
		return 1
	}
	return 0
}

func printSummary(result *downloader.BatchResult) {
	fmt.Printf("Downloaded %d/%d files (%s)\n",
		len(result.Succeeded), result.Attempted, bytesize.New(float64(result.Bytes)))
	for _, failure := range result.Failed {
		fmt.Printf("  failed %s: %v\n", failure.URL, failure.Err)
	}
}

func envInt(name string, fallback int) int {
	if value := os.Getenv(name); value != "" {
		return cast.ToInt(value)
	}
	return fallback
}

func logFreeSpace(path string) {
	usage, err := disk.Usage(path)
	if err != nil {
		log.Println("disk usage:", err)
		return
	}
	log.Printf("free space at %s: %s", path, bytesize.New(float64(usage.Free)))
}
