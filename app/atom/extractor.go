// Package atom extracts Atom 1.0 documents into the intermediate feed
// record.
package atom

import (
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
// The root element must be feed.
func Extract(doc *document.Document) (*feed.Record, error) {
	tree, err := xmltree.Parse(doc.Body())
	if err != nil {
		return nil, feed.WrapXML(doc.URL(), err)
	}

	root := tree.Root
	if root.Name != "feed" && !strings.HasSuffix(root.Name, ":feed") {
		return nil, feed.NewError(feed.ErrorFeedRootNotFound, doc.URL(), nil)
	}

	rec := &feed.Record{
		Kind:          feed.KindAtom,
		SourceURL:     doc.URL(),
		Title:         root.ChildText("title"),
		Description:   root.ChildText("subtitle"),
		Language:      root.Attr("xml:lang"),
		IconURL:       doc.ResolveURL(root.ChildText("icon")),
		LastBuildDate: feed.ParseDate(root.ChildText("updated")),
	}

	for _, link := range root.ChildrenNamed("link") {
		href := doc.ResolveURL(link.Attr("href"))
		if href == "" {
			continue
		}
		switch link.Attr("rel") {
		case "", "alternate":
			if rec.Link == "" {
				rec.Link = href
			}
		case "self":
			rec.SelfURL = href
		case "hub":
			rec.Hubs = append(rec.Hubs, feed.Hub{Type: "WebSub", URL: href})
		}
	}

	for _, author := range root.ChildrenNamed("author") {
		rec.Authors = append(rec.Authors, extractAuthor(author))
	}

	for _, entry := range root.ChildrenNamed("entry") {
		rec.Entries = append(rec.Entries, extractEntry(doc, entry))
	}

	return rec, nil
}

func extractEntry(doc *document.Document, node *xmltree.Node) feed.Entry {
	entry := feed.Entry{
		ID:            node.ChildText("id"),
		Title:         node.ChildText("title"),
		Body:          extractContent(node.Child("content")),
		Summary:       node.ChildText("summary"),
		DatePublished: feed.ParseDate(node.ChildText("published")),
		DateModified:  feed.ParseDate(node.ChildText("updated")),
	}

	entry.Permalink, entry.ExternalLink = selectLinks(doc, node)

	for _, link := range node.ChildrenNamed("link") {
		if link.Attr("rel") != "enclosure" {
			continue
		}
		href := doc.ResolveURL(link.Attr("href"))
		if href == "" {
			continue
		}
		size, _ := strconv.ParseInt(link.Attr("length"), 10, 64)
		entry.Enclosures = append(entry.Enclosures, feed.Attachment{
			URL:         href,
			MimeType:    link.Attr("type"),
			Title:       link.Attr("title"),
			SizeInBytes: size,
		})
	}

	for _, author := range node.ChildrenNamed("author") {
		entry.Authors = append(entry.Authors, extractAuthor(author))
	}

	for _, category := range node.ChildrenNamed("category") {
		if term := strings.TrimSpace(category.Attr("term")); term != "" {
			entry.Tags = append(entry.Tags, term)
		}
	}

	return entry
}

// extractContent prefers the element's own text (CDATA sections included);
// when the content is pure embedded markup, the serialized child elements
// stand in for it.
func extractContent(content *xmltree.Node) string {
	if content == nil {
		return ""
	}
	if text := strings.TrimSpace(content.Text); text != "" {
		return text
	}
	if len(content.Children) > 0 {
		return content.InnerXML()
	}
	return ""
}

// selectLinks picks the entry's permalink (rel=alternate wins, then the
// first link with an href) and its external link (rel=related).
func selectLinks(doc *document.Document, node *xmltree.Node) (permalink, external string) {
	var first string
	for _, link := range node.ChildrenNamed("link") {
		href := doc.ResolveURL(link.Attr("href"))
		if href == "" {
			continue
		}
		switch link.Attr("rel") {
		case "", "alternate":
			if permalink == "" {
				permalink = href
			}
		case "related":
			if external == "" {
				external = href
			}
		}
		if first == "" {
			first = href
		}
	}
	if permalink == "" {
		permalink = first
	}
	return permalink, external
}

func extractAuthor(node *xmltree.Node) feed.Author {
	return feed.Author{
		Name:         node.ChildText("name"),
		EmailAddress: node.ChildText("email"),
		URL:          node.ChildText("uri"),
	}
}
