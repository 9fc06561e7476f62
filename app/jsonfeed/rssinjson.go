package jsonfeed

import (
	"bytes"
	"cmp"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
)

// RSS-in-JSON mirrors RSS 2.0 field names under {"rss": {"channel": ...}}.
// Leaf shapes are loose: guid may be a string or a {"#value": ...} object,
// category a string or an array, item an object or an array.

type rssInJSON struct {
	RSS *rssSection `json:"rss"`
}

type rssSection struct {
	Channel *rssChannel `json:"channel"`
}

type rssChannel struct {
	Title         string     `json:"title"`
	Link          string     `json:"link"`
	Description   string     `json:"description"`
	Language      string     `json:"language"`
	LastBuildDate string     `json:"lastBuildDate"`
	TTL           flexString `json:"ttl"`
	Item          rssItems   `json:"item"`
}

type rssItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Guid        any    `json:"guid"`
	PubDate     string `json:"pubDate"`
	Author      string `json:"author"`
	Category    any    `json:"category"`
	Enclosure   any    `json:"enclosure"`
}

// rssItems accepts a single item object as well as an array.
type rssItems []rssItem

func (l *rssItems) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '[' {
		var items []rssItem
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var item rssItem
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*l = rssItems{item}
	return nil
}

// ParseRSSInJSON runs extraction and canonical transformation in one step.
func ParseRSSInJSON(doc *document.Document) (*feed.Parsed, error) {
	rec, err := ExtractRSSInJSON(doc)
	if err != nil {
		return nil, err
	}
	return feed.NewBuilder().Run(rec), nil
}

// ExtractRSSInJSON decodes an RSS-in-JSON document into the intermediate
// record. The rss > channel path must be present.
func ExtractRSSInJSON(doc *document.Document) (*feed.Record, error) {
	var parsed rssInJSON
	if err := json.Unmarshal([]byte(doc.Body()), &parsed); err != nil {
		return nil, feed.NewError(feed.ErrorInvalidJSON, doc.URL(), err)
	}
	if parsed.RSS == nil || parsed.RSS.Channel == nil {
		return nil, feed.NewError(feed.ErrorChannelNotFound, doc.URL(), nil)
	}
	channel := parsed.RSS.Channel

	rec := &feed.Record{
		Kind:          feed.KindRSSInJSON,
		SourceURL:     doc.URL(),
		Title:         channel.Title,
		Link:          doc.ResolveURL(channel.Link),
		Description:   channel.Description,
		Language:      channel.Language,
		LastBuildDate: feed.ParseDate(channel.LastBuildDate),
	}
	if ttl, err := strconv.Atoi(string(channel.TTL)); err == nil && ttl > 0 {
		rec.TTL = ttl
	}

	for _, item := range channel.Item {
		rec.Entries = append(rec.Entries, extractRSSItem(doc, item))
	}

	return rec, nil
}

func extractRSSItem(doc *document.Document, item rssItem) feed.Entry {
	entry := feed.Entry{
		Title:         item.Title,
		Permalink:     doc.ResolveURL(item.Link),
		Body:          item.Description,
		ID:            scalarValue(item.Guid),
		DatePublished: feed.ParseDate(item.PubDate),
		Tags:          scalarValues(item.Category),
	}
	if entry.Permalink == "" && strings.HasPrefix(entry.ID, "http") {
		entry.Permalink = entry.ID
	}
	if author := strings.TrimSpace(item.Author); author != "" {
		entry.Authors = append(entry.Authors, feed.Author{Name: author})
	}
	entry.Enclosures = extractEnclosures(doc, item.Enclosure)
	return entry
}

func extractEnclosures(doc *document.Document, value any) []feed.Attachment {
	var raw []any
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		raw = v
	default:
		raw = []any{v}
	}
	var out []feed.Attachment
	for _, entry := range raw {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, feed.Attachment{
			URL:         doc.ResolveURL(scalarValue(obj["url"])),
			MimeType:    scalarValue(obj["type"]),
			SizeInBytes: scalarSize(cmp.Or(obj["length"], obj["fileSize"])),
		})
	}
	return out
}

// scalarValue flattens a string, number, or {"#value": ...} object.
func scalarValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		return scalarValue(v["#value"])
	default:
		return ""
	}
}

func scalarValues(value any) []string {
	switch v := value.(type) {
	case []any:
		var out []string
		for _, entry := range v {
			if s := scalarValue(entry); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := scalarValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func scalarSize(value any) int64 {
	n, err := strconv.ParseInt(scalarValue(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
