package parser

import (
	"strings"

	"github.com/feedsift/feedsift/app/feed"
	"github.com/feedsift/feedsift/app/jsonfeed"
)

// detectWindow bounds how far into an XML document the detector looks for
// a root-tag marker; prologs are short, documents are not.
const detectWindow = 2048

// DetectKind classifies raw text by cheap structural signals, without
// parsing. It never fails: anything ambiguous is KindUnknown.
func DetectKind(text string) feed.Kind {
	text = strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF"))
	if text == "" {
		return feed.KindUnknown
	}

	if text[0] == '{' {
		switch {
		case strings.Contains(text, `"version"`) && strings.Contains(text, jsonfeed.VersionMarker):
			return feed.KindJSONFeed
		case strings.Contains(text, `"rss"`) && strings.Contains(text, `"channel"`):
			return feed.KindRSSInJSON
		default:
			return feed.KindUnknown
		}
	}

	head := text
	if len(head) > detectWindow {
		head = head[:detectWindow]
	}
	switch {
	case containsTag(head, "rss"):
		return feed.KindRSS
	case containsTag(head, "feed"), strings.Contains(head, "http://www.w3.org/2005/Atom"):
		return feed.KindAtom
	default:
		return feed.KindUnknown
	}
}

// containsTag reports whether head contains an opening tag with exactly
// the given name; "<rss2" must not count as "<rss".
func containsTag(head, name string) bool {
	marker := "<" + name
	for i := 0; ; {
		j := strings.Index(head[i:], marker)
		if j < 0 {
			return false
		}
		i += j + len(marker)
		if i >= len(head) {
			return false
		}
		switch head[i] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return true
		}
	}
}
