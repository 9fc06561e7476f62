package feed

import "time"

// Canonical model types. Every source format is normalized into Parsed and
// Item; nothing format-specific survives past this point.

type Kind int

const (
	KindUnknown Kind = iota
	KindRSS
	KindAtom
	KindJSONFeed
	KindRSSInJSON
)

func (k Kind) String() string {
	switch k {
	case KindRSS:
		return "rss"
	case KindAtom:
		return "atom"
	case KindJSONFeed:
		return "jsonfeed"
	case KindRSSInJSON:
		return "rssinjson"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Parsed is the canonical feed handed to callers. It is created fresh per
// parse call and is the caller's to own afterwards.
type Parsed struct {
	Kind          Kind       `json:"kind"`
	Title         string     `json:"title,omitempty"`
	HomePageURL   string     `json:"home_page_url,omitempty"`
	FeedURL       string     `json:"feed_url,omitempty"`
	Language      string     `json:"language,omitempty"`
	Description   string     `json:"description,omitempty"`
	NextURL       string     `json:"next_url,omitempty"`
	IconURL       string     `json:"icon_url,omitempty"`
	FaviconURL    string     `json:"favicon_url,omitempty"`
	Authors       []Author   `json:"authors,omitempty"`
	Expired       bool       `json:"expired,omitempty"`
	Hubs          []Hub      `json:"hubs,omitempty"`
	Items         []Item     `json:"items"`
	LastBuildDate *time.Time `json:"last_build_date,omitempty"`
	TTL           int        `json:"ttl,omitempty"`
}

// Valid reports whether the feed carries enough identity to be useful:
// a title, a feed URL, or a home page URL.
func (f *Parsed) Valid() bool {
	return f.Title != "" || f.FeedURL != "" || f.HomePageURL != ""
}

// Item is one canonical article. UniqueID is never empty and is stable
// across re-parses of byte-identical input.
type Item struct {
	UniqueID       string       `json:"unique_id"`
	FeedURL        string       `json:"feed_url,omitempty"`
	URL            string       `json:"url,omitempty"`
	ExternalURL    string       `json:"external_url,omitempty"`
	Title          string       `json:"title,omitempty"`
	Language       string       `json:"language,omitempty"`
	ContentHTML    string       `json:"content_html,omitempty"`
	ContentText    string       `json:"content_text,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
	BannerImageURL string       `json:"banner_image_url,omitempty"`
	DatePublished  *time.Time   `json:"date_published,omitempty"`
	DateModified   *time.Time   `json:"date_modified,omitempty"`
	Authors        []Author     `json:"authors,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

// Valid reports whether the item is worth keeping: it needs a title or
// some form of content. Items failing this never reach callers.
func (it *Item) Valid() bool {
	return it.Title != "" || it.ContentHTML != "" || it.ContentText != "" || it.Summary != ""
}

// PlainText returns the item's text form: contentText, else the stripped
// contentHTML, else the summary.
func (it *Item) PlainText() string {
	if it.ContentText != "" {
		return it.ContentText
	}
	if it.ContentHTML != "" {
		return StripHTML(it.ContentHTML)
	}
	return it.Summary
}

type Author struct {
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

// IsZero reports whether the author carries no information at all.
func (a Author) IsZero() bool {
	return a.Name == "" && a.URL == "" && a.AvatarURL == "" && a.EmailAddress == ""
}

// Attachment is a linked media file: an RSS enclosure, an Atom
// link[rel=enclosure], a media:content element, or a JSON Feed attachment.
type Attachment struct {
	URL               string `json:"url"`
	MimeType          string `json:"mime_type,omitempty"`
	Title             string `json:"title,omitempty"`
	SizeInBytes       int64  `json:"size_in_bytes,omitempty"`
	DurationInSeconds int    `json:"duration_in_seconds,omitempty"`
}

// Hub is a pub/sub endpoint advertised by the feed. Carried through for
// callers; nothing here subscribes to it.
type Hub struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}
