package feed

import (
	"testing"
	"time"
)

func testRecord(entries ...Entry) *Record {
	return &Record{
		Kind:      KindRSS,
		Title:     "Test Feed",
		Link:      "https://example.com",
		SourceURL: "https://example.com/feed.xml",
		Entries:   entries,
	}
}

func TestBuilderMapsFeedFields(t *testing.T) {
	rec := testRecord()
	rec.Language = "en-us"
	rec.Description = "A test feed"
	rec.SelfURL = "https://example.com/rss"

	parsed := NewBuilder().Run(rec)

	if parsed.Kind != KindRSS {
		t.Errorf("Expected kind rss, got: %s", parsed.Kind)
	}
	if parsed.Title != "Test Feed" {
		t.Errorf("Expected title 'Test Feed', got: %s", parsed.Title)
	}
	if parsed.HomePageURL != "https://example.com" {
		t.Errorf("Expected home page URL, got: %s", parsed.HomePageURL)
	}
	// The self-declared URL outranks the fetch URL.
	if parsed.FeedURL != "https://example.com/rss" {
		t.Errorf("Expected self URL, got: %s", parsed.FeedURL)
	}
	if !parsed.Valid() {
		t.Error("Expected a valid feed")
	}
}

func TestBuilderFeedURLFallsBackToSource(t *testing.T) {
	parsed := NewBuilder().Run(testRecord())
	if parsed.FeedURL != "https://example.com/feed.xml" {
		t.Errorf("Expected source URL fallback, got: %s", parsed.FeedURL)
	}
}

func TestBuilderKeepsExplicitID(t *testing.T) {
	parsed := NewBuilder().Run(testRecord(Entry{ID: "guid-1", Title: "A"}))
	if len(parsed.Items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(parsed.Items))
	}
	if parsed.Items[0].UniqueID != "guid-1" {
		t.Errorf("Expected explicit guid, got: %s", parsed.Items[0].UniqueID)
	}
}

func TestBuilderSynthesizesStableID(t *testing.T) {
	published := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := Entry{Title: "A", Permalink: "http://x", DatePublished: &published}

	first := NewBuilder().Run(testRecord(entry))
	second := NewBuilder().Run(testRecord(entry))

	if len(first.Items) != 1 || len(second.Items) != 1 {
		t.Fatalf("Expected 1 item in each parse")
	}
	id := first.Items[0].UniqueID
	if id == "" {
		t.Fatal("Expected a synthesized ID")
	}
	if second.Items[0].UniqueID != id {
		t.Errorf("Expected identical IDs across parses, got %s and %s", id, second.Items[0].UniqueID)
	}
}

func TestBuilderSynthesizedIDVariesWithInput(t *testing.T) {
	a := NewBuilder().Run(testRecord(Entry{Title: "A", Permalink: "http://x"}))
	b := NewBuilder().Run(testRecord(Entry{Title: "B", Permalink: "http://x"}))
	if a.Items[0].UniqueID == b.Items[0].UniqueID {
		t.Error("Expected different titles to hash differently")
	}
}

func TestBuilderDropsInvalidEntries(t *testing.T) {
	parsed := NewBuilder().Run(testRecord(
		Entry{ID: "only-id"},
		Entry{Title: "kept"},
		Entry{Summary: "also kept"},
	))
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got: %d", len(parsed.Items))
	}
	for _, item := range parsed.Items {
		if item.UniqueID == "only-id" {
			t.Error("Expected the title-less, content-less entry to be dropped")
		}
	}
}

func TestBuilderDeduplicatesTags(t *testing.T) {
	parsed := NewBuilder().Run(testRecord(Entry{
		Title: "A",
		Tags:  []string{"go", "feeds", "go", "", "feeds"},
	}))
	tags := parsed.Items[0].Tags
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "feeds" {
		t.Errorf("Expected deduplicated tags [go feeds], got: %v", tags)
	}
}

func TestBuilderFiltersEmptyAuthorsAndAttachments(t *testing.T) {
	parsed := NewBuilder().Run(testRecord(Entry{
		Title:      "A",
		Authors:    []Author{{}, {Name: "Jo"}},
		Enclosures: []Attachment{{URL: ""}, {URL: "https://example.com/a.mp3"}},
	}))
	item := parsed.Items[0]
	if len(item.Authors) != 1 || item.Authors[0].Name != "Jo" {
		t.Errorf("Expected empty author dropped, got: %v", item.Authors)
	}
	if len(item.Attachments) != 1 {
		t.Errorf("Expected URL-less attachment dropped, got: %v", item.Attachments)
	}
}

func TestItemPlainTextFallback(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"content text wins", Item{ContentText: "plain", ContentHTML: "<p>html</p>"}, "plain"},
		{"html stripped", Item{ContentHTML: "<p>Hello <b>world</b></p>"}, "Hello world"},
		{"summary last", Item{Summary: "a summary"}, "a summary"},
		{"empty", Item{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.PlainText(); got != tt.want {
				t.Errorf("Expected %q, got: %q", tt.want, got)
			}
		})
	}
}
