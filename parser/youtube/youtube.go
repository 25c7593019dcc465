package youtube

import (
	"errors"
	"log/slog"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/scipunch/ytrss/parser"
)

var ErrChannelNotFound = errors.New("channel id not found")

var (
	ogURLChannelRe  = regexp.MustCompile(`/channel/([UC][a-zA-Z0-9_-]+)`)
	scriptChannelRe = regexp.MustCompile(`"channel_id":"([UC][a-zA-Z0-9_-]+)"`)
)

// Strategies is the lookup order used by Extract
var Strategies = []parser.Strategy{
	FromOpenGraph,
	FromScripts,
}

// Extract finds the channel id in a channel page.
// A nil page is treated as absent and yields ErrChannelNotFound.
func Extract(page []byte) (string, error) {
	if page == nil {
		return "", ErrChannelNotFound
	}

	doc, err := parser.Document(page)
	if err != nil {
		return "", err
	}

	id, ok := parser.FirstMatch(doc, Strategies)
	if !ok {
		slog.Debug("youtube parser: no strategy matched")
		return "", ErrChannelNotFound
	}
	return id, nil
}

// FromOpenGraph reads the first og:url meta tag
func FromOpenGraph(doc *goquery.Document) (string, bool) {
	content, ok := doc.Find(`meta[property="og:url"]`).First().Attr("content")
	if !ok {
		return "", false
	}
	m := ogURLChannelRe.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	slog.Debug("youtube parser: channel id found in og:url", "id", m[1])
	return m[1], true
}

// FromScripts scans script elements in document order
func FromScripts(doc *goquery.Document) (string, bool) {
	var id string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw, err := goquery.OuterHtml(s)
		if err != nil {
			return true
		}
		if m := scriptChannelRe.FindStringSubmatch(raw); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	if id == "" {
		return "", false
	}
	slog.Debug("youtube parser: channel id found in script", "id", id)
	return id, true
}
