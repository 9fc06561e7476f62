package jsonfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsift/feedsift/app/document"
	"github.com/feedsift/feedsift/app/feed"
)

const sampleRSSInJSON = `{
  "rss": {
    "version": "2.0",
    "channel": {
      "title": "JSON Channel",
      "link": "https://example.com/",
      "description": "RSS expressed as JSON",
      "language": "en-us",
      "lastBuildDate": "Mon, 03 Jul 2023 12:00:00 GMT",
      "ttl": 30,
      "item": [
        {
          "title": "First",
          "link": "https://example.com/1",
          "description": "Body one",
          "guid": {"#value": "item-1", "isPermaLink": false},
          "pubDate": "Mon, 03 Jul 2023 10:00:00 GMT",
          "author": "Jane Writer",
          "category": ["a", "b"],
          "enclosure": {"url": "/1.mp3", "type": "audio/mpeg", "length": "512"}
        },
        {
          "title": "Second",
          "link": "https://example.com/2",
          "description": "Body two",
          "guid": "item-2",
          "category": "solo"
        }
      ]
    }
  }
}`

func TestParseRSSInJSON(t *testing.T) {
	doc := document.New(sampleRSSInJSON, "https://example.com/feed.json")
	parsed, err := ParseRSSInJSON(doc)
	require.NoError(t, err)

	assert.Equal(t, feed.KindRSSInJSON, parsed.Kind)
	assert.Equal(t, "JSON Channel", parsed.Title)
	assert.Equal(t, "https://example.com/", parsed.HomePageURL)
	assert.Equal(t, "RSS expressed as JSON", parsed.Description)
	assert.Equal(t, "en-us", parsed.Language)
	assert.Equal(t, 30, parsed.TTL)
	require.NotNil(t, parsed.LastBuildDate)
	require.Len(t, parsed.Items, 2)

	first := parsed.Items[0]
	assert.Equal(t, "item-1", first.UniqueID, "guid object #value")
	assert.Equal(t, "https://example.com/1", first.URL)
	assert.Equal(t, "Body one", first.ContentHTML)
	require.Len(t, first.Authors, 1)
	assert.Equal(t, "Jane Writer", first.Authors[0].Name)
	assert.Equal(t, []string{"a", "b"}, first.Tags)
	require.Len(t, first.Attachments, 1)
	assert.Equal(t, "https://example.com/1.mp3", first.Attachments[0].URL)
	assert.Equal(t, "audio/mpeg", first.Attachments[0].MimeType)
	assert.Equal(t, int64(512), first.Attachments[0].SizeInBytes)

	second := parsed.Items[1]
	assert.Equal(t, "item-2", second.UniqueID, "string guid")
	assert.Equal(t, []string{"solo"}, second.Tags)
}

func TestParseRSSInJSONSingleItemObject(t *testing.T) {
	body := `{"rss": {"channel": {"title": "T", "item": {"title": "Only", "description": "x"}}}}`
	parsed, err := ParseRSSInJSON(document.New(body, "https://example.com/feed.json"))
	require.NoError(t, err)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Only", parsed.Items[0].Title)
}

func TestParseRSSInJSONValidation(t *testing.T) {
	_, err := ParseRSSInJSON(document.New(`{"title": "not rss"}`, "https://example.com/feed.json"))
	assert.Equal(t, feed.ErrorChannelNotFound, feed.KindOf(err))

	_, err = ParseRSSInJSON(document.New(`{broken`, "https://example.com/feed.json"))
	assert.Equal(t, feed.ErrorInvalidJSON, feed.KindOf(err))
}
