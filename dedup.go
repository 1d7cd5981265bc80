package papermill

// Deduplicator remembers keys seen during a run.
type Deduplicator interface {
	// Seen reports whether key was added before.
	Seen(key string) bool

	// Add records key.
	Add(key string)
}
