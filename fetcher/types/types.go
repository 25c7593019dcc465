package types

import (
	"github.com/mmcdole/gofeed/atom"
)

// Entry is a single feed node. Fields are read from the node on demand.
type Entry struct {
	node *atom.Entry
}

func NewEntry(node *atom.Entry) Entry {
	return Entry{node: node}
}

func (e Entry) Title() string {
	if e.node == nil {
		return ""
	}
	return e.node.Title
}

// Published returns the raw publish timestamp, e.g. 2023-10-01T12:00:00+00:00
func (e Entry) Published() string {
	if e.node == nil {
		return ""
	}
	return e.node.Published
}

// Link returns the href of the first link element
func (e Entry) Link() string {
	if e.node == nil {
		return ""
	}
	for _, l := range e.node.Links {
		if l != nil {
			return l.Href
		}
	}
	return ""
}

// VideoID returns the yt:videoId extension, if the feed carries it
func (e Entry) VideoID() string {
	if e.node == nil {
		return ""
	}
	if vals := e.node.Extensions["yt"]["videoId"]; len(vals) > 0 {
		return vals[0].Value
	}
	return ""
}

func (e Entry) Video() Video {
	return Video{
		Title:     e.Title(),
		Published: e.Published(),
		Link:      e.Link(),
	}
}

// Video is the projected record shown to the user
type Video struct {
	Title     string `json:"title"`
	Published string `json:"published"`
	Link      string `json:"link"`
}
