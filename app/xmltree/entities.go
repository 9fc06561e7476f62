package xmltree

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeEntities resolves the XML named entities plus decimal and hex
// character references. Anything unrecognized is left verbatim; feeds are
// full of bare ampersands.
func decodeEntities(s string) string {
	amp := strings.IndexByte(s, '&')
	if amp < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:amp])
	for i := amp; i < len(s); {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi < 2 || semi > 12 {
			b.WriteByte(c)
			i++
			continue
		}
		if decoded, ok := decodeEntity(s[i+1 : i+semi]); ok {
			b.WriteString(decoded)
			i += semi + 1
		} else {
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func decodeEntity(name string) (string, bool) {
	switch name {
	case "amp":
		return "&", true
	case "lt":
		return "<", true
	case "gt":
		return ">", true
	case "quot":
		return `"`, true
	case "apos":
		return "'", true
	}
	if name[0] != '#' {
		return "", false
	}
	digits := name[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 || !utf8.ValidRune(rune(n)) {
		return "", false
	}
	return string(rune(n)), true
}
