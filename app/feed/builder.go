package feed

import (
	"cmp"
	"log/slog"
	"time"
)

// Builder maps an intermediate Record onto the canonical model. It holds
// no state between runs; one Builder may serve concurrent parses.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Run produces the canonical feed. Entries without a title or any content
// are dropped here and logged; they never reach the caller.
func (b *Builder) Run(rec *Record) *Parsed {
	parsed := &Parsed{
		Kind:          rec.Kind,
		Title:         rec.Title,
		HomePageURL:   rec.Link,
		FeedURL:       cmp.Or(rec.SelfURL, rec.SourceURL),
		Language:      rec.Language,
		Description:   rec.Description,
		NextURL:       rec.NextURL,
		IconURL:       rec.IconURL,
		FaviconURL:    rec.FaviconURL,
		Expired:       rec.Expired,
		TTL:           rec.TTL,
		LastBuildDate: rec.LastBuildDate,
		Authors:       meaningfulAuthors(rec.Authors),
		Hubs:          rec.Hubs,
		Items:         make([]Item, 0, len(rec.Entries)),
	}

	for _, entry := range rec.Entries {
		item := b.buildItem(rec, entry)
		if !item.Valid() {
			slog.Debug("Dropping entry without title or content",
				"feed", rec.SourceURL, "id", entry.ID)
			continue
		}
		parsed.Items = append(parsed.Items, item)
	}

	return parsed
}

func (b *Builder) buildItem(rec *Record, entry Entry) Item {
	item := Item{
		UniqueID:       cmp.Or(entry.ID, b.synthesizeID(entry)),
		FeedURL:        cmp.Or(rec.SelfURL, rec.SourceURL),
		URL:            entry.Permalink,
		ExternalURL:    entry.ExternalLink,
		Title:          entry.Title,
		Language:       cmp.Or(entry.Language, rec.Language),
		ContentHTML:    entry.Body,
		ContentText:    entry.BodyText,
		Summary:        entry.Summary,
		ImageURL:       entry.ImageURL,
		BannerImageURL: entry.BannerImageURL,
		DatePublished:  entry.DatePublished,
		DateModified:   entry.DateModified,
		Authors:        meaningfulAuthors(entry.Authors),
		Tags:           uniqueTags(entry.Tags),
		Attachments:    usableAttachments(entry.Enclosures),
	}
	return item
}

// synthesizeID derives a stable ID for an entry the source left
// unidentified. The same title/link/date triple always hashes to the same
// ID, so re-parsing identical input re-produces identical IDs.
func (b *Builder) synthesizeID(entry Entry) string {
	published := ""
	if entry.DatePublished != nil {
		published = entry.DatePublished.Format(time.RFC3339)
	}
	return Hash32(entry.Title, entry.Permalink, published)
}

func meaningfulAuthors(authors []Author) []Author {
	var out []Author
	for _, a := range authors {
		if !a.IsZero() {
			out = append(out, a)
		}
	}
	return out
}

// uniqueTags suppresses duplicates while keeping first-seen order.
func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func usableAttachments(attachments []Attachment) []Attachment {
	var out []Attachment
	for _, a := range attachments {
		if a.URL != "" {
			out = append(out, a)
		}
	}
	return out
}
