package browser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snapshot is a saved page that answers the same text queries as a live Session.
type Snapshot struct {
	doc *goquery.Document
}

// NewSnapshot parses an HTML document.
func NewSnapshot(r io.Reader) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &Snapshot{doc: doc}, nil
}

// Texts returns the text of every element matching the CSS selector, in document order.
// Runs of whitespace collapse to one space and the ends are trimmed, as a
// rendered page would show them.
func (s *Snapshot) Texts(_ context.Context, selector string) ([]string, error) {
	sel := s.doc.Find(selector)
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, el *goquery.Selection) {
		texts = append(texts, strings.Join(strings.Fields(el.Text()), " "))
	})
	return texts, nil
}
