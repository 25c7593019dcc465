package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPFetcher_FetchPage_Success(t *testing.T) {
	var gotUA string
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>Mocked YouTube Page</html>"))
	}))
	defer testServer.Close()

	fetcher := NewHTTPFetcher(time.Second, "ytrss-test", discardLogger())
	page, err := fetcher.FetchPage(context.Background(), testServer.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>Mocked YouTube Page</html>", string(page))
	assert.Equal(t, "ytrss-test", gotUA)
}

func TestHTTPFetcher_FetchPage_AcceptsAny2xx(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte("ok"))
	}))
	defer testServer.Close()

	fetcher := NewHTTPFetcher(time.Second, "", discardLogger())
	page, err := fetcher.FetchPage(context.Background(), testServer.URL)

	require.NoError(t, err)
	assert.Equal(t, "ok", string(page))
}

func TestHTTPFetcher_FetchPage_NotFound(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer testServer.Close()

	fetcher := NewHTTPFetcher(time.Second, "", discardLogger())
	page, err := fetcher.FetchPage(context.Background(), testServer.URL)

	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.Contains(t, err.Error(), "unexpected status code 404")
	assert.Nil(t, page)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	fetcher := NewHTTPFetcher(time.Second, "", discardLogger())

	page, err := fetcher.FetchPage(context.Background(), "invalid://url")

	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.Nil(t, page)
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer testServer.Close()
	defer close(release)

	fetcher := NewHTTPFetcher(50*time.Millisecond, "", discardLogger())
	page, err := fetcher.FetchPage(context.Background(), testServer.URL)

	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.Nil(t, page)
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewHTTPFetcher(time.Second, "", discardLogger())
	page, err := fetcher.FetchPage(ctx, testServer.URL)

	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, page)
}
