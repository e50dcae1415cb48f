// Package fetch retrieves a document from either a local file path or an
// http(s):// URL behind one uniform call, the same dual-scheme shape the
// example pack's resource fetcher uses. Unlike that fetcher this one has no
// circuit breaker: callers here make exactly one playlist fetch per run, so
// the failure/backoff machinery of a long-lived service has nothing to do.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single fetch when the caller supplies none.
const DefaultTimeout = 30 * time.Second

// IsRemote reports whether ref looks like an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Text fetches ref (a local file path or an http(s):// URL) and returns its
// full body as a string.
func Text(ctx context.Context, ref string) (string, error) {
	var r io.ReadCloser
	var err error
	if IsRemote(ref) {
		r, err = fetchHTTP(ctx, ref)
	} else {
		r, err = os.Open(ref)
	}
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", ref, err)
	}
	return string(body), nil
}

func fetchHTTP(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("performing request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return &cancelingReader{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelingReader ties the request's context cancellation to the body's
// Close, so callers that defer Close() don't leak the timeout context.
type cancelingReader struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelingReader) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}
