package atom

import (
	"strings"
	"testing"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
)

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xml:lang="en">
  <title>Atom Test</title>
  <subtitle>Entries about things</subtitle>
  <link rel="self" href="https://example.com/atom.xml"/>
  <link rel="alternate" href="https://example.com/"/>
  <link rel="hub" href="https://hub.example.com/"/>
  <icon>/icon.png</icon>
  <updated>2023-07-03T12:00:00Z</updated>
  <author><name>Site Author</name></author>
  <entry>
    <title>First Entry</title>
    <id>tag:example.com,2023:1</id>
    <published>2023-07-03T10:00:00Z</published>
    <updated>2023-07-03T11:00:00Z</updated>
    <link rel="self" href="https://example.com/entries/1.atom"/>
    <link rel="alternate" href="https://example.com/entries/1"/>
    <link rel="related" href="https://elsewhere.example.org/"/>
    <link rel="enclosure" href="/audio/1.mp3" type="audio/mpeg" length="4096" title="Episode 1"/>
    <content type="html"><![CDATA[<p>Body one</p>]]></content>
    <summary>Summary one</summary>
    <author><name>Jane</name><email>jane@example.com</email><uri>https://jane.example.com</uri></author>
    <category term="go"/>
    <category term="feeds"/>
  </entry>
  <entry>
    <title>XHTML Entry</title>
    <id>tag:example.com,2023:2</id>
    <content type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml"><p>Embedded</p></div></content>
  </entry>
  <entry>
    <title>Summary Only</title>
    <id>tag:example.com,2023:3</id>
    <summary>Just a summary</summary>
  </entry>
</feed>`

func TestParseAtom(t *testing.T) {
	doc := document.New(sampleAtom, "https://example.com/atom.xml")
	parsed, err := Parse(doc)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if parsed.Kind != feed.KindAtom {
		t.Errorf("Expected kind atom, got: %s", parsed.Kind)
	}
	if parsed.Title != "Atom Test" {
		t.Errorf("Expected title 'Atom Test', got: %s", parsed.Title)
	}
	if parsed.Description != "Entries about things" {
		t.Errorf("Expected subtitle as description, got: %s", parsed.Description)
	}
	if parsed.Language != "en" {
		t.Errorf("Expected xml:lang, got: %s", parsed.Language)
	}
	if parsed.HomePageURL != "https://example.com/" {
		t.Errorf("Expected alternate link as home page, got: %s", parsed.HomePageURL)
	}
	if parsed.FeedURL != "https://example.com/atom.xml" {
		t.Errorf("Expected self link as feed URL, got: %s", parsed.FeedURL)
	}
	if parsed.IconURL != "https://example.com/icon.png" {
		t.Errorf("Expected resolved icon, got: %s", parsed.IconURL)
	}
	if len(parsed.Hubs) != 1 {
		t.Errorf("Expected one hub, got: %v", parsed.Hubs)
	}
	if len(parsed.Authors) != 1 || parsed.Authors[0].Name != "Site Author" {
		t.Errorf("Expected feed author, got: %v", parsed.Authors)
	}
	if len(parsed.Items) != 3 {
		t.Fatalf("Expected 3 items, got: %d", len(parsed.Items))
	}
}

func TestParseAtomEntry(t *testing.T) {
	parsed, err := Parse(document.New(sampleAtom, "https://example.com/atom.xml"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	entry := parsed.Items[0]

	if entry.UniqueID != "tag:example.com,2023:1" {
		t.Errorf("Expected atom id as uniqueID, got: %s", entry.UniqueID)
	}
	// rel=alternate wins over rel=self.
	if entry.URL != "https://example.com/entries/1" {
		t.Errorf("Expected alternate link, got: %s", entry.URL)
	}
	if entry.ExternalURL != "https://elsewhere.example.org/" {
		t.Errorf("Expected related link as external URL, got: %s", entry.ExternalURL)
	}
	if entry.ContentHTML != "<p>Body one</p>" {
		t.Errorf("Expected CDATA content, got: %q", entry.ContentHTML)
	}
	if entry.Summary != "Summary one" {
		t.Errorf("Expected summary, got: %q", entry.Summary)
	}
	if entry.DatePublished == nil || entry.DateModified == nil {
		t.Error("Expected published and updated dates")
	}
	if len(entry.Authors) != 1 {
		t.Fatalf("Expected 1 author, got: %v", entry.Authors)
	}
	author := entry.Authors[0]
	if author.Name != "Jane" || author.EmailAddress != "jane@example.com" || author.URL != "https://jane.example.com" {
		t.Errorf("Unexpected author: %+v", author)
	}
	if len(entry.Tags) != 2 {
		t.Errorf("Expected category terms as tags, got: %v", entry.Tags)
	}

	if len(entry.Attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got: %d", len(entry.Attachments))
	}
	enclosure := entry.Attachments[0]
	if enclosure.URL != "https://example.com/audio/1.mp3" {
		t.Errorf("Expected resolved enclosure href, got: %s", enclosure.URL)
	}
	if enclosure.MimeType != "audio/mpeg" || enclosure.SizeInBytes != 4096 || enclosure.Title != "Episode 1" {
		t.Errorf("Unexpected enclosure: %+v", enclosure)
	}
}

func TestParseAtomEmbeddedMarkupContent(t *testing.T) {
	parsed, err := Parse(document.New(sampleAtom, "https://example.com/atom.xml"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	entry := parsed.Items[1]
	if !strings.Contains(entry.ContentHTML, "<p>Embedded</p>") {
		t.Errorf("Expected serialized child markup, got: %q", entry.ContentHTML)
	}
}

func TestParseAtomSummaryFallback(t *testing.T) {
	parsed, err := Parse(document.New(sampleAtom, "https://example.com/atom.xml"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	entry := parsed.Items[2]
	if entry.ContentHTML != "" {
		t.Errorf("Expected no content, got: %q", entry.ContentHTML)
	}
	if entry.PlainText() != "Just a summary" {
		t.Errorf("Expected summary fallback, got: %q", entry.PlainText())
	}
}

func TestParseAtomWrongRoot(t *testing.T) {
	_, err := Parse(document.New(`<rss version="2.0"><channel/></rss>`, "https://example.com/feed"))
	if feed.KindOf(err) != feed.ErrorFeedRootNotFound {
		t.Errorf("Expected feed-root-not-found, got: %v", err)
	}
}
