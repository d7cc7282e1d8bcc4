package downloader

// Hook is called once per transfer, after its outcome is finalized.
// Hooks run on the goroutine that called Run, never concurrently.
type Hook func(outcome Outcome)
