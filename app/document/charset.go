package document

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Charset reports the character encoding a raw document declares: the BOM
// when there is one, else the XML declaration's encoding attribute, else
// "". Names are lowercased.
func Charset(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return "utf-8"
	case bytes.HasPrefix(raw, bomUTF16BE), bytes.HasPrefix(raw, bomUTF16LE):
		return "utf-16"
	}
	return strings.ToLower(declaredEncoding(raw))
}

// DecodeText converts raw fetched bytes to a UTF-8 string, honoring BOMs
// and the declared charset. Undecodable input falls back to being treated
// as UTF-8; a bad charset label must not fail the parse.
func DecodeText(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):])
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw, unicode.BigEndian)
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw, unicode.LittleEndian)
	}

	name := declaredEncoding(raw)
	if name == "" || strings.EqualFold(name, "utf-8") {
		return string(raw)
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return string(raw)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func decodeUTF16(raw []byte, endian unicode.Endianness) string {
	enc := unicode.UTF16(endian, unicode.ExpectBOM)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// declaredEncoding pulls the encoding attribute out of an XML declaration
// in the first kilobyte, if any.
func declaredEncoding(raw []byte) string {
	head := raw
	if len(head) > 1024 {
		head = head[:1024]
	}
	if !bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("<?xml")) {
		return ""
	}
	decl := head[:bytes.IndexByte(head, byte('>'))+1]
	if len(decl) == 0 {
		decl = head
	}
	marker := []byte("encoding=")
	i := bytes.Index(decl, marker)
	if i < 0 {
		return ""
	}
	rest := decl[i+len(marker):]
	if len(rest) < 2 || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	quote := rest[0]
	end := bytes.IndexByte(rest[1:], quote)
	if end < 0 {
		return ""
	}
	return string(rest[1 : 1+end])
}
