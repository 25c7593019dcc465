package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/scipunch/ytrss/cache"
	"github.com/scipunch/ytrss/config"
	"github.com/scipunch/ytrss/fetcher"
	"github.com/scipunch/ytrss/filter"
	"github.com/scipunch/ytrss/logger"
	"github.com/scipunch/ytrss/parser/youtube"
	"github.com/scipunch/ytrss/pipeline"
	"github.com/scipunch/ytrss/report"
)

const usageExample = "ytrss https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw -filter_by date -filter_value 2023-10-01"

type options struct {
	channelURL  string
	filterBy    string
	filterValue string
	cfgPath     string
	limit       int
	timeout     time.Duration
	noClipboard bool
	cleanCache  bool
	writeConfig bool
}

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// parseArgs accepts flags before and after the channel URL
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ytrss", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Convert a YouTube channel URL to its RSS feed URL and list the latest videos.")
		fmt.Fprintln(stderr, "\nUsage: ytrss [flags] <youtube_url>")
		fs.PrintDefaults()
		fmt.Fprintln(stderr, "\nExample:", usageExample)
	}
	fs.StringVar(&opts.filterBy, "filter_by", "", "filter videos by 'date' or 'title'")
	fs.StringVar(&opts.filterValue, "filter_value", "", "value to filter by (YYYY-MM-DD for date, keyword for title)")
	fs.StringVar(&opts.cfgPath, "config", config.DefaultPath(), "path to a TOML config")
	fs.IntVar(&opts.limit, "limit", 0, "number of latest feed entries to consider (default from config, 5)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "timeout of each HTTP request (default from config, 10s)")
	fs.BoolVar(&opts.noClipboard, "no-clipboard", false, "do not copy the feed URL to the clipboard")
	fs.BoolVar(&opts.cleanCache, "clean", false, "remove all channel cache entries and exit")
	fs.BoolVar(&opts.writeConfig, "write-config", false, "write the effective config to -config and exit")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %w", errUsage, err)
	}
	rest := fs.Args()
	if len(rest) > 0 {
		opts.channelURL = rest[0]
		if err := fs.Parse(rest[1:]); err != nil {
			return opts, fmt.Errorf("%w: %w", errUsage, err)
		}
		if fs.NArg() > 0 {
			return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
		}
	}

	if opts.channelURL == "" && !opts.cleanCache && !opts.writeConfig {
		fs.Usage()
		return opts, fmt.Errorf("%w: the youtube_url argument is required", errUsage)
	}
	if opts.limit < 0 {
		return opts, fmt.Errorf("%w: -limit must not be negative", errUsage)
	}
	return opts, nil
}

func loadConfig(opts options) (config.Config, error) {
	conf, err := config.Read(opts.cfgPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return conf, err
	}
	if opts.limit > 0 {
		conf.Limit = opts.limit
	}
	if opts.timeout > 0 {
		conf.Timeout = opts.timeout.String()
	}
	if opts.noClipboard {
		disabled := false
		conf.Clipboard = &disabled
	}
	if os.Getenv("DEBUG") != "" {
		conf.LogLevel = "debug"
	}
	return conf, conf.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	conf, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "invalid config: %s\n", err)
		return 2
	}

	log := logger.New(stderr, conf.LogLevel)
	slog.SetDefault(log)

	criterion, err := filter.Parse(opts.filterBy, opts.filterValue)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.writeConfig {
		if conf.CachePath == "" {
			conf.CachePath = config.DefaultCachePath()
		}
		if err := config.Write(opts.cfgPath, conf); err != nil {
			log.Error("failed to write config", "error", err)
			return 1
		}
		return 0
	}

	var channelCache *cache.Cache
	if conf.CachePath != "" {
		channelCache, err = cache.NewCache(conf.CachePath)
		if err != nil {
			log.Error("failed to initialize cache", "path", conf.CachePath, "error", err)
			return 1
		}
		defer channelCache.Close()
	}

	if opts.cleanCache {
		if channelCache == nil {
			log.Warn("no cache_path configured, nothing to clean")
			return 0
		}
		if err := channelCache.Clear(); err != nil {
			log.Error("failed to clear cache", "error", err)
			return 1
		}
		log.Info("cache cleared successfully")
		return 0
	}

	httpFetcher := fetcher.NewHTTPFetcher(conf.RequestTimeout(), conf.UserAgent, log)
	resolver := pipeline.New(httpFetcher, fetcher.NewAtomFetcher(httpFetcher, log), log)
	if channelCache != nil {
		if stats, err := channelCache.Stats(); err == nil {
			log.Debug("cache initialized", "channels", stats.Channels)
		}
		resolver.WithCache(channelCache)
	}

	ch, err := resolver.ResolveChannel(ctx, opts.channelURL)
	switch {
	case errors.Is(err, fetcher.ErrFetchFailed):
		fmt.Fprintf(stdout, "Error fetching URL: %s\n", err)
		return 0
	case errors.Is(err, youtube.ErrChannelNotFound):
		fmt.Fprintln(stdout, "Channel ID not found.")
		return 0
	case errors.Is(err, youtube.ErrEmptyChannelID):
		fmt.Fprintln(stdout, "Could not create RSS feed URL.")
		return 0
	case err != nil:
		fmt.Fprintf(stdout, "Could not read channel page: %s\n", err)
		return 0
	}

	copied := false
	if conf.CopyToClipboard() {
		copied = copyToClipboard(log, ch.FeedURL)
	}
	if err := report.WriteChannel(stdout, ch, copied); err != nil {
		log.Error("failed to print channel", "error", err)
		return 1
	}

	videos, err := resolver.Videos(ctx, ch.FeedURL, pipeline.Request{Limit: conf.Limit, Criterion: criterion})
	switch {
	case errors.Is(err, filter.ErrInvalidFilterInput):
		fmt.Fprintf(stderr, "Error filtering videos: %s\n", err)
		return 1
	case errors.Is(err, fetcher.ErrParserUnavailable):
		fmt.Fprintln(stdout, "Could not fetch RSS feed content: the response is not an Atom feed.")
		return 0
	case err != nil:
		fmt.Fprintln(stdout, "Could not fetch RSS feed content.")
		return 0
	}

	if err := report.WriteVideos(stdout, videos, stdoutWidth(stdout)); err != nil {
		log.Error("failed to print videos", "error", err)
		return 1
	}
	return 0
}

func copyToClipboard(log *slog.Logger, text string) bool {
	if clipboard.Unsupported {
		log.Warn("clipboard is not supported on this system")
		return false
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Warn("failed to copy feed URL to clipboard", "error", err)
		return false
	}
	return true
}

func stdoutWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return report.TerminalWidth(f)
	}
	return 0
}
