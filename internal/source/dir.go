package source

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// LogExtension is the only file extension treated as a log source.
const LogExtension = ".log"

// Long JSON lines blow past bufio.Scanner's default 64K token limit.
const maxLineBytes = 1024 * 1024

// DirReader serves log sources from a local log root directory, the
// layout the TraceNest writer produces (flat directory of *.log files).
type DirReader struct {
	root string
	log  zerolog.Logger
}

// NewDirReader creates a DirReader over the given log root.
func NewDirReader(root string, logger zerolog.Logger) *DirReader {
	return &DirReader{root: root, log: logger}
}

// ListSources returns the base names of the *.log files in the log root,
// sorted by name. A missing root is an empty list, not an error.
func (r *DirReader) ListSources(ctx context.Context) ([]string, error) {
	if _, err := os.Stat(r.root); os.IsNotExist(err) {
		r.log.Debug().Str("root", r.root).Msg("log root does not exist")
		return nil, nil
	}

	matches, err := doublestar.FilepathGlob(
		filepath.Join(r.root, "*"+LogExtension),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		return nil, fmt.Errorf("list sources in %s: %w", r.root, err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)

	return names, nil
}

// ReadLines reads the named source and returns its last maxLines lines.
func (r *DirReader) ReadLines(ctx context.Context, name string, maxLines int) ([]string, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(r.root, name))
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if maxLines > 0 && len(lines) > maxLines {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source %s: %w", name, err)
	}

	return lines, nil
}

// ValidateName rejects names that could escape the log root or that do not
// look like log files. The viewer is strictly read-only over *.log files.
func ValidateName(name string) error {
	if !strings.HasSuffix(name, LogExtension) {
		return fmt.Errorf("invalid source name %q: must end in %s", name, LogExtension)
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid source name %q", name)
	}
	return nil
}
