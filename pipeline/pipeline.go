package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/scipunch/ytrss/fetcher/types"
	"github.com/scipunch/ytrss/filter"
	"github.com/scipunch/ytrss/parser/youtube"
)

type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

type FeedFetcher interface {
	Fetch(ctx context.Context, url string, limit int) ([]types.Entry, error)
}

// ChannelCache is satisfied by *cache.Cache
type ChannelCache interface {
	GetChannelID(pageURL string) (string, bool, error)
	SetChannelID(pageURL, channelID string) error
}

type Channel struct {
	ID      string
	FeedURL string
}

type Request struct {
	Limit     int
	Criterion filter.Criterion
}

type Result struct {
	Channel Channel
	Videos  []types.Video
}

// Resolver turns a channel page URL into feed entries.
// Every stage failure stops the run and is returned as is, so callers can
// tell stages apart with errors.Is.
type Resolver struct {
	pages PageFetcher
	feeds FeedFetcher
	cache ChannelCache
	log   *slog.Logger
}

func New(pages PageFetcher, feeds FeedFetcher, log *slog.Logger) *Resolver {
	return &Resolver{pages: pages, feeds: feeds, log: log}
}

// WithCache enables channel id caching keyed by page URL
func (r *Resolver) WithCache(c ChannelCache) *Resolver {
	r.cache = c
	return r
}

// ResolveChannel fetches the page, extracts the channel id and builds its feed URL
func (r *Resolver) ResolveChannel(ctx context.Context, pageURL string) (Channel, error) {
	var ch Channel

	id, cached := r.cachedID(pageURL)
	if !cached {
		page, err := r.pages.FetchPage(ctx, pageURL)
		if err != nil {
			return ch, err
		}

		id, err = youtube.Extract(page)
		if errors.Is(err, youtube.ErrChannelNotFound) {
			r.log.Warn("channel id not found", slog.String("url", pageURL))
			return ch, err
		}
		if err != nil {
			r.log.Error("failed to read channel page", slog.String("url", pageURL), slog.Any("error", err))
			return ch, err
		}
		r.storeID(pageURL, id)
	}

	feedURL, err := youtube.FeedURL(id)
	if err != nil {
		r.log.Error("could not create feed URL", slog.String("url", pageURL), slog.Any("error", err))
		return ch, err
	}

	ch.ID = id
	ch.FeedURL = feedURL
	r.log.Debug("channel resolved", slog.String("id", id), slog.Bool("cached", cached))
	return ch, nil
}

// Videos fetches the feed and filters its entries
func (r *Resolver) Videos(ctx context.Context, feedURL string, req Request) ([]types.Video, error) {
	entries, err := r.feeds.Fetch(ctx, feedURL, req.Limit)
	if err != nil {
		return nil, err
	}

	videos, err := filter.Apply(entries, req.Criterion)
	if err != nil {
		return nil, fmt.Errorf("failed to filter %d entries with %w", len(entries), err)
	}

	r.log.Debug("videos selected",
		slog.Int("entries", len(entries)),
		slog.Int("videos", len(videos)),
		slog.String("filter", req.Criterion.Kind.String()))
	return videos, nil
}

// Run executes every stage in order
func (r *Resolver) Run(ctx context.Context, pageURL string, req Request) (Result, error) {
	var res Result

	ch, err := r.ResolveChannel(ctx, pageURL)
	if err != nil {
		return res, err
	}
	res.Channel = ch

	videos, err := r.Videos(ctx, ch.FeedURL, req)
	if err != nil {
		return res, err
	}
	res.Videos = videos
	return res, nil
}

func (r *Resolver) cachedID(pageURL string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	id, found, err := r.cache.GetChannelID(pageURL)
	if err != nil {
		r.log.Warn("channel cache read failed, treating as miss", slog.Any("error", err))
		return "", false
	}
	if found && id != "" {
		r.log.Debug("channel cache hit", slog.String("url", pageURL))
		return id, true
	}
	return "", false
}

func (r *Resolver) storeID(pageURL, id string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetChannelID(pageURL, id); err != nil {
		r.log.Warn("failed to cache channel id", slog.Any("error", err))
	}
}
