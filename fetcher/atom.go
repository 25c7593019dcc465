package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"github.com/scipunch/ytrss/fetcher/types"
)

const DefaultLimit = 5

// AtomFetcher downloads a channel feed and returns its first entries
type AtomFetcher struct {
	http   *HTTPFetcher
	parser *atom.Parser
	log    *slog.Logger
}

func NewAtomFetcher(http *HTTPFetcher, log *slog.Logger) *AtomFetcher {
	return &AtomFetcher{
		http:   http,
		parser: &atom.Parser{},
		log:    log,
	}
}

// Fetch returns at most limit entries in document order.
// A limit of zero or less falls back to DefaultLimit.
// A feed without entries yields an empty slice and no error.
func (f *AtomFetcher) Fetch(ctx context.Context, url string, limit int) ([]types.Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	body, err := f.http.get(ctx, url)
	if err != nil {
		return nil, err
	}

	if ft := gofeed.DetectFeedType(bytes.NewReader(body)); ft != gofeed.FeedTypeAtom {
		f.log.Error("no parser available for feed document",
			slog.String("url", url),
			slog.String("detected_type", feedTypeName(ft)),
			slog.String("hint", "expected an Atom document such as https://www.youtube.com/feeds/videos.xml?channel_id=<id>"),
		)
		return nil, fmt.Errorf("%w: '%s' is %s", ErrParserUnavailable, url, feedTypeName(ft))
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		f.log.Error("failed to parse Atom feed", slog.String("url", url), slog.Any("error", err))
		return nil, fmt.Errorf("%w: '%s' with %w", ErrInvalidFeed, url, err)
	}

	nodes := feed.Entries
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	entries := make([]types.Entry, 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, types.NewEntry(node))
	}

	f.log.Debug("feed parsed", slog.String("url", url), slog.Int("total", len(feed.Entries)), slog.Int("kept", len(entries)))
	return entries, nil
}

func feedTypeName(ft gofeed.FeedType) string {
	switch ft {
	case gofeed.FeedTypeAtom:
		return "atom"
	case gofeed.FeedTypeRSS:
		return "rss"
	case gofeed.FeedTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}
