// Package jsonfeed extracts the JSON syndication family: JSON Feed 1.x
// and RSS-in-JSON.
package jsonfeed

import (
	"bytes"
	"encoding/json"
	"html"
	"strings"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
)

// VersionMarker is the substring every JSON Feed version URL carries.
const VersionMarker = "://jsonfeed.org/version/"

type jsonAuthor struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Avatar string `json:"avatar"`
}

type jsonHub struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type jsonAttachment struct {
	URL               string  `json:"url"`
	MimeType          string  `json:"mime_type"`
	Title             string  `json:"title"`
	SizeInBytes       int64   `json:"size_in_bytes"`
	DurationInSeconds float64 `json:"duration_in_seconds"`
}

type jsonItem struct {
	ID            flexString       `json:"id"`
	URL           string           `json:"url"`
	ExternalURL   string           `json:"external_url"`
	Title         string           `json:"title"`
	ContentHTML   string           `json:"content_html"`
	ContentText   string           `json:"content_text"`
	Summary       string           `json:"summary"`
	Image         string           `json:"image"`
	BannerImage   string           `json:"banner_image"`
	DatePublished string           `json:"date_published"`
	DateModified  string           `json:"date_modified"`
	Language      string           `json:"language"`
	Author        *jsonAuthor      `json:"author"`
	Authors       []jsonAuthor     `json:"authors"`
	Tags          []string         `json:"tags"`
	Attachments   []jsonAttachment `json:"attachments"`
}

type jsonFeed struct {
	Version     string       `json:"version"`
	Title       string       `json:"title"`
	HomePageURL string       `json:"home_page_url"`
	FeedURL     string       `json:"feed_url"`
	Description string       `json:"description"`
	NextURL     string       `json:"next_url"`
	Icon        string       `json:"icon"`
	Favicon     string       `json:"favicon"`
	Language    string       `json:"language"`
	Expired     bool         `json:"expired"`
	Author      *jsonAuthor  `json:"author"`
	Authors     []jsonAuthor `json:"authors"`
	Hubs        []jsonHub    `json:"hubs"`
	Items       []jsonItem   `json:"items"`
}

// flexString accepts a JSON string or number; feeds in the wild use both
// for item IDs.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

// Parse runs extraction and canonical transformation in one step.
func Parse(doc *document.Document) (*feed.Parsed, error) {
	rec, err := Extract(doc)
	if err != nil {
		return nil, err
	}
	return feed.NewBuilder().Run(rec), nil
}

// Extract decodes a JSON Feed document into the intermediate record. The
// version URL, a non-empty items array, and a title are all required.
func Extract(doc *document.Document) (*feed.Record, error) {
	var parsed jsonFeed
	if err := json.Unmarshal([]byte(doc.Body()), &parsed); err != nil {
		return nil, feed.NewError(feed.ErrorInvalidJSON, doc.URL(), err)
	}
	if !strings.Contains(parsed.Version, VersionMarker) {
		return nil, feed.NewError(feed.ErrorVersionNotFound, doc.URL(), nil)
	}
	if len(parsed.Items) == 0 {
		return nil, feed.NewError(feed.ErrorItemsNotFound, doc.URL(), nil)
	}
	if parsed.Title == "" {
		return nil, feed.NewError(feed.ErrorTitleNotFound, doc.URL(), nil)
	}

	rec := &feed.Record{
		Kind:        feed.KindJSONFeed,
		SourceURL:   doc.URL(),
		Title:       parsed.Title,
		Link:        parsed.HomePageURL,
		SelfURL:     parsed.FeedURL,
		Description: parsed.Description,
		NextURL:     parsed.NextURL,
		IconURL:     parsed.Icon,
		FaviconURL:  parsed.Favicon,
		Language:    parsed.Language,
		Expired:     parsed.Expired,
		Authors:     convertAuthors(parsed.Authors, parsed.Author),
	}
	for _, hub := range parsed.Hubs {
		if hub.URL != "" {
			rec.Hubs = append(rec.Hubs, feed.Hub{Type: hub.Type, URL: hub.URL})
		}
	}

	decodeTitles := hostAllowed(doc)
	for _, item := range parsed.Items {
		entry, ok := extractItem(item, decodeTitles)
		if !ok {
			continue
		}
		rec.Entries = append(rec.Entries, entry)
	}

	return rec, nil
}

// extractItem drops items without an ID or without any content, per the
// JSON Feed spec's required fields.
func extractItem(item jsonItem, decodeTitle bool) (feed.Entry, bool) {
	if item.ID == "" || (item.ContentHTML == "" && item.ContentText == "") {
		return feed.Entry{}, false
	}
	title := item.Title
	if decodeTitle {
		title = html.UnescapeString(title)
	}
	return feed.Entry{
		ID:             string(item.ID),
		Permalink:      item.URL,
		ExternalLink:   item.ExternalURL,
		Title:          title,
		Language:       item.Language,
		Body:           item.ContentHTML,
		BodyText:       item.ContentText,
		Summary:        item.Summary,
		ImageURL:       item.Image,
		BannerImageURL: item.BannerImage,
		DatePublished:  feed.ParseDate(item.DatePublished),
		DateModified:   feed.ParseDate(item.DateModified),
		Authors:        convertAuthors(item.Authors, item.Author),
		Enclosures:     convertAttachments(item.Attachments),
		Tags:           item.Tags,
	}, true
}

// convertAuthors honors the 1.1 authors array over the 1.0 author object.
func convertAuthors(authors []jsonAuthor, single *jsonAuthor) []feed.Author {
	if len(authors) == 0 && single != nil {
		authors = []jsonAuthor{*single}
	}
	var out []feed.Author
	for _, a := range authors {
		out = append(out, feed.Author{Name: a.Name, URL: a.URL, AvatarURL: a.Avatar})
	}
	return out
}

func convertAttachments(attachments []jsonAttachment) []feed.Attachment {
	var out []feed.Attachment
	for _, a := range attachments {
		out = append(out, feed.Attachment{
			URL:               a.URL,
			MimeType:          a.MimeType,
			Title:             a.Title,
			SizeInBytes:       a.SizeInBytes,
			DurationInSeconds: int(a.DurationInSeconds),
		})
	}
	return out
}

// hostAllowed reports whether the document's source host is on the
// entity-decoded-title allow-list.
func hostAllowed(doc *document.Document) bool {
	host := doc.Host()
	if host == "" {
		return false
	}
	for _, allowed := range doc.Options().DecodeEntityTitleHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
