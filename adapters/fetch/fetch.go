// Package fetch loads the raw survey export from a file or URL.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	apperrors "handlestats/internal/errors"
)

// maxBodyBytes caps a remote export
const maxBodyBytes = 32 << 20

// Fetcher retrieves the export bytes. One call is one attempt; callers do not retry.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	Source() string
}

// New picks an HTTP fetcher for http(s) URLs and a file fetcher otherwise.
func New(source string, timeout time.Duration) Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return NewHTTPFetcher(source, &http.Client{Timeout: timeout})
	}
	return NewFileFetcher(source)
}

// FileFetcher reads a local export.
type FileFetcher struct {
	path string
}

// NewFileFetcher returns a fetcher for the export at path.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Source returns the file path.
func (f *FileFetcher) Source() string { return f.path }

// Fetch reads the whole file, failing early if ctx is already done.
func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.FetchFailed(f.path, err)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, apperrors.FetchFailed(f.path, err)
	}
	log.Printf("[Fetch] Read %d bytes from %s", len(data), f.path)
	return data, nil
}

// HTTPFetcher downloads an export with a single GET.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher returns a fetcher for url. A nil client uses http.DefaultClient.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{url: url, client: client}
}

// Source returns the export URL.
func (f *HTTPFetcher) Source() string { return f.url }

// Fetch downloads the export. Any status other than 200 is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, apperrors.FetchFailed(f.url, err)
	}

	startTime := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.FetchFailed(f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.FetchFailed(f.url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, apperrors.FetchFailed(f.url, err)
	}
	if len(data) > maxBodyBytes {
		return nil, apperrors.FetchFailed(f.url, fmt.Errorf("export larger than %d bytes", maxBodyBytes))
	}
	log.Printf("[Fetch] Downloaded %d bytes from %s in %.2fms", len(data), f.url, float64(time.Since(startTime).Nanoseconds())/1e6)
	return data, nil
}
