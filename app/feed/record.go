package feed

import "time"

// Record is the format-shaped intermediate a format extractor produces.
// It exists only to bridge one extractor to the Builder; each parse call
// creates one and discards it.
type Record struct {
	Kind          Kind
	Title         string
	Link          string // home page URL
	SelfURL       string // the feed's self-declared URL, when present
	SourceURL     string // the URL the document was fetched from
	Language      string
	Description   string
	NextURL       string
	IconURL       string
	FaviconURL    string
	Expired       bool
	TTL           int
	LastBuildDate *time.Time
	Authors       []Author
	Hubs          []Hub
	Entries       []Entry
}

// Entry is one intermediate item/entry record.
type Entry struct {
	ID             string
	Permalink      string
	ExternalLink   string
	Title          string
	Language       string
	Body           string // HTML content
	BodyText       string // plain-text content, when the format has one
	Summary        string
	ImageURL       string
	BannerImageURL string
	DatePublished  *time.Time
	DateModified   *time.Time
	Authors        []Author
	Enclosures     []Attachment
	Tags           []string
}
