package parser

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Strategy looks for a value inside a parsed page.
// It reports false when the page does not carry what it looks for.
type Strategy func(doc *goquery.Document) (string, bool)

// FirstMatch applies strategies in order and returns the first hit
func FirstMatch(doc *goquery.Document, strategies []Strategy) (string, bool) {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return v, true
		}
	}
	return "", false
}

// Document parses raw HTML leniently
func Document(page []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML with %w", err)
	}
	return doc, nil
}
