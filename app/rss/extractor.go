// Package rss extracts RSS 2.0 documents into the intermediate feed
// record. It reads the generic tree; it never touches raw markup itself.
package rss

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
	"github.com/feedsift/feedsift/app/xmltree"
)

// Parse runs extraction and canonical transformation in one step.
func Parse(doc *document.Document) (*feed.Parsed, error) {
	rec, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	return feed.NewBuilder().Run(rec), nil
}

// Extract walks the document's tree and produces the intermediate record.
// The root must be rss > channel.
func Extract(doc *document.Document) (*feed.Record, error) {
	tree, err := xmltree.Parse(doc.Body())
	if err != nil {
		return nil, feed.WrapXML(doc.URL(), err)
	}

	channel := findChannel(tree.Root)
	if channel == nil {
		return nil, feed.NewError(feed.ErrorChannelNotFound, doc.URL(), nil)
	}

	rec := &feed.Record{
		Kind:          feed.KindRSS,
		SourceURL:     doc.URL(),
		Title:         channel.ChildText("title"),
		Link:          doc.ResolveURL(channel.ChildText("link")),
		Description:   channel.ChildText("description"),
		Language:      channel.ChildText("language"),
		LastBuildDate: feed.ParseDate(channel.ChildText("lastBuildDate")),
	}
	if ttl, err := strconv.Atoi(channel.ChildText("ttl")); err == nil && ttl > 0 {
		rec.TTL = ttl
	}
	if image := channel.Child("image"); image != nil {
		rec.IconURL = doc.ResolveURL(image.ChildText("url"))
	}
	for _, link := range channel.ChildrenNamed("atom:link") {
		href := doc.ResolveURL(link.Attr("href"))
		switch link.Attr("rel") {
		case "self":
			rec.SelfURL = href
		case "hub":
			if href != "" {
				rec.Hubs = append(rec.Hubs, feed.Hub{Type: "WebSub", URL: href})
			}
		}
	}

	for _, item := range channel.ChildrenNamed("item") {
		rec.Entries = append(rec.Entries, extractItem(doc, item))
	}

	return rec, nil
}

// findChannel accepts rss > channel, tolerating a namespace-prefixed rss
// root. A bare channel root is rejected.
func findChannel(root *xmltree.Node) *xmltree.Node {
	if root == nil {
		return nil
	}
	if root.Name != "rss" && !strings.HasSuffix(root.Name, ":rss") {
		return nil
	}
	return root.Child("channel")
}

func extractItem(doc *document.Document, item *xmltree.Node) feed.Entry {
	entry := feed.Entry{
		Title:         item.ChildText("title"),
		Permalink:     doc.ResolveURL(item.ChildText("link")),
		Body:          cmp.Or(item.ChildText("content:encoded"), item.ChildText("description")),
		DatePublished: feed.ParseDate(item.ChildText("pubDate")),
	}

	guid := item.Child("guid")
	entry.ID = item.ChildText("guid")
	// A permalink-style guid can stand in for a missing link.
	if entry.Permalink == "" && entry.ID != "" &&
		guid.Attr("isPermaLink") != "false" && strings.HasPrefix(entry.ID, "http") {
		entry.Permalink = entry.ID
	}

	if author := parseAuthor(cmp.Or(item.ChildText("author"), item.ChildText("dc:creator"))); !author.IsZero() {
		entry.Authors = append(entry.Authors, author)
	}

	for _, category := range item.ChildrenNamed("category") {
		if tag := strings.TrimSpace(category.Text); tag != "" {
			entry.Tags = append(entry.Tags, tag)
		}
	}

	for _, enclosure := range item.ChildrenNamed("enclosure") {
		entry.Enclosures = append(entry.Enclosures, feed.Attachment{
			URL:         doc.ResolveURL(enclosure.Attr("url")),
			MimeType:    enclosure.Attr("type"),
			SizeInBytes: parseSize(enclosure.Attr("length")),
		})
	}
	for _, media := range item.ChildrenNamed("media:content") {
		entry.Enclosures = append(entry.Enclosures, feed.Attachment{
			URL:               doc.ResolveURL(media.Attr("url")),
			MimeType:          cmp.Or(media.Attr("type"), media.Attr("medium")),
			SizeInBytes:       parseSize(cmp.Or(media.Attr("length"), media.Attr("fileSize"))),
			DurationInSeconds: int(parseSize(media.Attr("duration"))),
		})
	}

	return entry
}

// parseAuthor handles the RSS convention "email (Name)" as well as bare
// names and bare addresses.
func parseAuthor(value string) feed.Author {
	value = strings.TrimSpace(value)
	if value == "" {
		return feed.Author{}
	}
	if open := strings.Index(value, "("); open > 0 && strings.HasSuffix(value, ")") {
		address := strings.TrimSpace(value[:open])
		name := strings.TrimSpace(value[open+1 : len(value)-1])
		if strings.Contains(address, "@") {
			return feed.Author{Name: name, EmailAddress: address}
		}
	}
	if strings.Contains(value, "@") && !strings.Contains(value, " ") {
		return feed.Author{EmailAddress: value}
	}
	return feed.Author{Name: value}
}

func parseSize(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
