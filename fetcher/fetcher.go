package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

var (
	// ErrFetchFailed covers network errors, timeouts and non-2xx responses.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParserUnavailable means no parser in the program can handle the document type.
	ErrParserUnavailable = errors.New("no parser available for feed document")
	// ErrInvalidFeed means the document was detected as Atom but could not be decoded.
	ErrInvalidFeed = errors.New("invalid feed document")
)

const DefaultTimeout = 10 * time.Second

// HTTPFetcher performs single timed GET requests. It never retries.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

func NewHTTPFetcher(timeout time.Duration, userAgent string, log *slog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		log:       log,
	}
}

// FetchPage downloads a channel page and returns its raw bytes
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	return f.get(ctx, url)
}

func (f *HTTPFetcher) get(ctx context.Context, url string) ([]byte, error) {
	log := f.log.With(slog.String("url", url))
	log.Debug("fetching url")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("%w: invalid request for '%s' with %w", ErrFetchFailed, url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: '%s' with %w", ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("unexpected status code", slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status code %d for '%s'", ErrFetchFailed, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", slog.Any("error", err))
		return nil, fmt.Errorf("%w: reading body of '%s' with %w", ErrFetchFailed, url, err)
	}

	log.Debug("fetched url", slog.Int("bytes", len(body)))
	return body, nil
}
