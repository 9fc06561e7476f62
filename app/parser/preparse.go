package parser

import (
	"encoding/json"
	"strings"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
	"github.com/feedsift/feedsift/app/xmltree"
)

// PreparseSummary is the cheap answer to "is this a usable feed, and what
// is it called": no items are materialized.
type PreparseSummary struct {
	Kind        feed.Kind `json:"kind"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	HomePageURL string    `json:"home_page_url,omitempty"`
}

// Preparse extracts only the feed-level title, description, and home page
// URL of a detected document.
func Preparse(doc *document.Document) (*PreparseSummary, error) {
	switch kind := DetectKind(doc.Body()); kind {
	case feed.KindRSS:
		return preparseRSS(doc)
	case feed.KindAtom:
		return preparseAtom(doc)
	case feed.KindJSONFeed:
		return preparseJSONFeed(doc)
	case feed.KindRSSInJSON:
		return preparseRSSInJSON(doc)
	default:
		return nil, feed.NewError(feed.ErrorUnsupportedFormat, doc.URL(), nil)
	}
}

func preparseRSS(doc *document.Document) (*PreparseSummary, error) {
	tree, err := xmltree.Parse(doc.Body())
	if err != nil {
		return nil, feed.WrapXML(doc.URL(), err)
	}
	root := tree.Root
	if root.Name != "rss" && !strings.HasSuffix(root.Name, ":rss") {
		return nil, feed.NewError(feed.ErrorChannelNotFound, doc.URL(), nil)
	}
	channel := root.Child("channel")
	if channel == nil {
		return nil, feed.NewError(feed.ErrorChannelNotFound, doc.URL(), nil)
	}
	return &PreparseSummary{
		Kind:        feed.KindRSS,
		Title:       channel.ChildText("title"),
		Description: channel.ChildText("description"),
		HomePageURL: doc.ResolveURL(channel.ChildText("link")),
	}, nil
}

func preparseAtom(doc *document.Document) (*PreparseSummary, error) {
	tree, err := xmltree.Parse(doc.Body())
	if err != nil {
		return nil, feed.WrapXML(doc.URL(), err)
	}
	root := tree.Root
	if root.Name != "feed" && !strings.HasSuffix(root.Name, ":feed") {
		return nil, feed.NewError(feed.ErrorFeedRootNotFound, doc.URL(), nil)
	}
	summary := &PreparseSummary{
		Kind:        feed.KindAtom,
		Title:       root.ChildText("title"),
		Description: root.ChildText("subtitle"),
	}
	for _, link := range root.ChildrenNamed("link") {
		rel := link.Attr("rel")
		if (rel == "" || rel == "alternate") && link.Attr("href") != "" {
			summary.HomePageURL = doc.ResolveURL(link.Attr("href"))
			break
		}
	}
	return summary, nil
}

func preparseJSONFeed(doc *document.Document) (*PreparseSummary, error) {
	var head struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		HomePageURL string `json:"home_page_url"`
	}
	if err := json.Unmarshal([]byte(doc.Body()), &head); err != nil {
		return nil, feed.NewError(feed.ErrorInvalidJSON, doc.URL(), err)
	}
	return &PreparseSummary{
		Kind:        feed.KindJSONFeed,
		Title:       head.Title,
		Description: head.Description,
		HomePageURL: head.HomePageURL,
	}, nil
}

func preparseRSSInJSON(doc *document.Document) (*PreparseSummary, error) {
	var head struct {
		RSS *struct {
			Channel *struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Link        string `json:"link"`
			} `json:"channel"`
		} `json:"rss"`
	}
	if err := json.Unmarshal([]byte(doc.Body()), &head); err != nil {
		return nil, feed.NewError(feed.ErrorInvalidJSON, doc.URL(), err)
	}
	if head.RSS == nil || head.RSS.Channel == nil {
		return nil, feed.NewError(feed.ErrorChannelNotFound, doc.URL(), nil)
	}
	return &PreparseSummary{
		Kind:        feed.KindRSSInJSON,
		Title:       head.RSS.Channel.Title,
		Description: head.RSS.Channel.Description,
		HomePageURL: doc.ResolveURL(head.RSS.Channel.Link),
	}, nil
}
