package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	UserAgent = "cube-sniper/1.0 (github.com/pfrederiksen/cube-sniper)"
	Timeout   = 30 * time.Second
)

// Response is a fetched body together with its headers
type Response struct {
	Body   []byte
	Header http.Header
}

// Fetcher retrieves a URL. Implementations must not retry.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPFetcher is a Fetcher backed by net/http
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with the given timeout and User-Agent.
// Zero values fall back to Timeout and UserAgent.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = Timeout
	}
	if userAgent == "" {
		userAgent = UserAgent
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch issues a GET request. Every failure, including a non-2xx status,
// is reported as ErrTransport.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrTransport, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code %d from %s", ErrTransport, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	return &Response{Body: body, Header: resp.Header}, nil
}
