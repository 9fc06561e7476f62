package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses the loosely formatted dates found in the wild: RFC 822
// with and without zone names, RFC 3339, and the many off-spec variants
// feeds actually ship. An unparseable date yields nil, never an error.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}
