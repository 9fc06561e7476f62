// Package document wraps one raw syndication document with its source URL
// and parse options. A Document is immutable and owned by the single parse
// call that consumes it.
package document

import (
	"net/url"
	"strings"
)

// Options tunes format-compatibility behavior. The zero value disables
// every quirk; most callers want DefaultOptions.
type Options struct {
	// DecodeEntityTitleHosts lists source hosts (matched by suffix)
	// whose JSON Feed item titles arrive HTML-entity-encoded and are
	// decoded on extraction. A compatibility shim for a few legacy
	// publishers, kept configurable on purpose.
	DecodeEntityTitleHosts []string
}

// DefaultOptions returns the stock compatibility configuration.
func DefaultOptions() Options {
	return Options{
		DecodeEntityTitleHosts: []string{
			"daringfireball.net",
			"macstories.net",
			"pxlnv.com",
		},
	}
}

type Document struct {
	body string
	url  string
	opts Options
}

// New wraps already-decoded text. The source URL is informational; it ends
// up in errors and is the base for relative URL resolution.
func New(body, sourceURL string) *Document {
	return NewWithOptions(body, sourceURL, DefaultOptions())
}

func NewWithOptions(body, sourceURL string, opts Options) *Document {
	return &Document{body: body, url: sourceURL, opts: opts}
}

// FromBytes wraps raw fetched bytes, decoding them to UTF-8 first using
// the document's own BOM or declared charset.
func FromBytes(raw []byte, sourceURL string, opts Options) *Document {
	return NewWithOptions(DecodeText(raw), sourceURL, opts)
}

func (d *Document) Body() string {
	return d.body
}

func (d *Document) URL() string {
	return d.url
}

func (d *Document) Options() Options {
	return d.opts
}

// Host returns the hostname of the source URL, or "".
func (d *Document) Host() string {
	u, err := url.Parse(d.url)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ResolveURL makes ref absolute against the source URL. Already-absolute
// references and unresolvable input come back unchanged.
func (d *Document) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || d.url == "" {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil || refURL.IsAbs() {
		return ref
	}
	base, err := url.Parse(d.url)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}
