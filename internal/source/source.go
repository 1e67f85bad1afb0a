package source

import "context"

// Reader provides the two read operations the viewer needs from a log
// backend: enumerating sources and fetching one source's raw lines.
// ReadLines returns at most maxLines lines, most recent last.
type Reader interface {
	ListSources(ctx context.Context) ([]string, error)
	ReadLines(ctx context.Context, name string, maxLines int) ([]string, error)
}
