package dining

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves a raw menu document. The HTTP implementation is the only
// one used in production; tests substitute stubs.
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) (string, error)
}

// menuURL is the remote menu page for a hall
func menuURL(hall Hall) string {
	return fmt.Sprintf("http://umassdining.com/locations-menus/%s/menu", hall.remoteCode())
}

// HTTPFetcher fetches documents over HTTP with a bounded timeout
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTP fetcher with a 30 second timeout
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchDocument retrieves the document at url as text
func (f *HTTPFetcher) FetchDocument(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}

	return string(body), nil
}
