package filter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scipunch/ytrss/fetcher/types"
)

var (
	// ErrUnknownFilter is returned by Parse for filter names other than date and title
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidFilterInput wraps date parsing failures during date filtering
	ErrInvalidFilterInput = errors.New("invalid filter input")
)

const dayLayout = "2006-01-02"

var publishedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05-0700",
}

type Kind int

const (
	None Kind = iota
	ByDate
	ByTitle
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case ByDate:
		return "date"
	case ByTitle:
		return "title"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Criterion selects which entries survive filtering
type Criterion struct {
	Kind  Kind
	Value string
}

func NoFilter() Criterion {
	return Criterion{Kind: None}
}

// Date keeps entries published on the given YYYY-MM-DD day
func Date(day string) Criterion {
	return Criterion{Kind: ByDate, Value: day}
}

// Title keeps entries whose title contains substring, ignoring case
func Title(substring string) Criterion {
	return Criterion{Kind: ByTitle, Value: substring}
}

// Parse builds a criterion from command line values.
// An empty name means no filtering; the value is then ignored.
func Parse(name, value string) (Criterion, error) {
	switch name {
	case "":
		if value != "" {
			slog.Warn("filter value given without filter name, ignoring", "value", value)
		}
		return NoFilter(), nil
	case "date":
		return Date(value), nil
	case "title":
		return Title(value), nil
	default:
		return Criterion{}, fmt.Errorf("%w '%s', expected 'date' or 'title'", ErrUnknownFilter, name)
	}
}

// Match reports whether the video passes the criterion
func (c Criterion) Match(v types.Video) (bool, error) {
	switch c.Kind {
	case None:
		return true, nil
	case ByTitle:
		return strings.Contains(strings.ToLower(v.Title), strings.ToLower(c.Value)), nil
	case ByDate:
		published, err := parsePublished(v.Published)
		if err != nil {
			return false, err
		}
		day, err := time.Parse(dayLayout, c.Value)
		if err != nil {
			return false, fmt.Errorf("%w: filter value '%s' is not YYYY-MM-DD with %w", ErrInvalidFilterInput, c.Value, err)
		}
		return sameDay(published, day), nil
	default:
		return false, fmt.Errorf("%w kind %s", ErrUnknownFilter, c.Kind)
	}
}

// Apply projects entries into videos and keeps those matching the criterion.
// Input order is preserved. Any date parsing failure fails the whole call.
func Apply(entries []types.Entry, c Criterion) ([]types.Video, error) {
	videos := make([]types.Video, 0, len(entries))
	for _, e := range entries {
		v := e.Video()
		ok, err := c.Match(v)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Debug("entry filtered out", "title", v.Title, "filter", c.Kind.String(), "url", v.Link)
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func parsePublished(s string) (time.Time, error) {
	var errs []error
	for _, layout := range publishedLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}
	return time.Time{}, fmt.Errorf("%w: published '%s' with %w", ErrInvalidFilterInput, s, errors.Join(errs...))
}

// sameDay compares calendar dates, each in its own offset
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
