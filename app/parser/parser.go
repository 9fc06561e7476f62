// Package parser is the public entry point of the feed parsing subsystem:
// detection, full parsing, and lightweight preparsing. Everything here is
// stateless and pure; concurrent callers need no synchronization.
package parser

import (
	"log/slog"

	"github.com/feedsift/feedsift/app/atom"
	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
	"github.com/feedsift/feedsift/app/jsonfeed"
	"github.com/feedsift/feedsift/app/rss"
)

// CanParse reports whether the document looks like a supported format.
// Cheap; safe to call before committing to a full parse.
func CanParse(doc *document.Document) bool {
	return DetectKind(doc.Body()) != feed.KindUnknown
}

// Parse turns the document into a canonical feed. A confidently detected
// format dispatches straight to its extractor; otherwise each extractor is
// tried in fixed priority order and the first success wins.
func Parse(doc *document.Document) (*feed.Parsed, error) {
	switch kind := DetectKind(doc.Body()); kind {
	case feed.KindRSS:
		return rss.Parse(doc)
	case feed.KindAtom:
		return atom.Parse(doc)
	case feed.KindJSONFeed:
		return jsonfeed.Parse(doc)
	case feed.KindRSSInJSON:
		return jsonfeed.ParseRSSInJSON(doc)
	}
	return parseUndetected(doc)
}

// parseUndetected tries every extractor in priority order: Atom, JSON
// Feed, RSS-in-JSON, RSS. When all fail the result is an
// unsupported-format error carrying the last underlying failure.
func parseUndetected(doc *document.Document) (*feed.Parsed, error) {
	attempts := []struct {
		kind feed.Kind
		run  func(*document.Document) (*feed.Parsed, error)
	}{
		{feed.KindAtom, atom.Parse},
		{feed.KindJSONFeed, jsonfeed.Parse},
		{feed.KindRSSInJSON, jsonfeed.ParseRSSInJSON},
		{feed.KindRSS, rss.Parse},
	}

	var lastErr error
	for _, attempt := range attempts {
		parsed, err := attempt.run(doc)
		if err == nil {
			return parsed, nil
		}
		slog.Debug("Extractor rejected undetected document",
			"feed", doc.URL(), "kind", attempt.kind.String(), "error", err)
		lastErr = err
	}
	return nil, feed.NewError(feed.ErrorUnsupportedFormat, doc.URL(), lastErr)
}
