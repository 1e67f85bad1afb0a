package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// HTTPReader fetches sources from a remote TraceNest UI backend:
// GET {base}/tracenest/files and GET {base}/tracenest/logs/{name}.
type HTTPReader struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewHTTPReader creates an HTTPReader against the given base URL.
func NewHTTPReader(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPReader {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)

	return &HTTPReader{client: client, log: logger}
}

// newHTTPReaderWithClient is used by tests to inject a mockable client.
func newHTTPReaderWithClient(client *resty.Client, logger zerolog.Logger) *HTTPReader {
	return &HTTPReader{client: client, log: logger}
}

// ListSources fetches the backend's source list.
func (r *HTTPReader) ListSources(ctx context.Context) ([]string, error) {
	var names []string

	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&names).
		Get("/tracenest/files")
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("list sources: backend returned %s", resp.Status())
	}

	return names, nil
}

// ReadLines fetches one source's raw text and returns its last maxLines
// lines. The backend serves plain text, one log line per text line.
func (r *HTTPReader) ReadLines(ctx context.Context, name string, maxLines int) ([]string, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	resp, err := r.client.R().
		SetContext(ctx).
		Get("/tracenest/logs/" + name)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", name, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("read source %s: backend returned %s", name, resp.Status())
	}

	lines := strings.Split(string(resp.Body()), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}

	r.log.Debug().Str("source", name).Int("lines", len(lines)).Msg("fetched source")
	return lines, nil
}
