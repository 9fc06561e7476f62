// Package xmltree builds a minimal DOM from XML-like text by recursive
// descent over the raw string. It is intentionally forgiving: real-world
// feeds arrive with unescaped markup, stray end tags, and broken nesting,
// and the builder must always terminate with either a tree or a
// SyntaxError. Every forward scan is bounded by an iteration ceiling tied
// to the input length, so malformed nesting cannot hang a parse.
package xmltree

import "strings"

// maxElementDepth caps recursion so that adversarial nesting cannot
// exhaust the stack.
const maxElementDepth = 400

type scanner struct {
	src string
	pos int
}

// Parse builds a Document from raw XML-like text. Comments, processing
// instructions, and the XML declaration are stripped before structural
// parsing begins; a leading BOM is ignored.
func Parse(text string) (*Document, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	s := &scanner{src: stripNonstructural(text)}
	s.skipProlog()
	if s.pos >= len(s.src) || s.src[s.pos] != '<' {
		return nil, s.syntaxErr(s.pos, ErrNoRootElement, "")
	}
	root, err := s.parseElement(0)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root}, nil
}

// stripNonstructural removes comments and <?...?> sections outside CDATA.
func stripNonstructural(src string) string {
	if !strings.Contains(src, "<!--") && !strings.Contains(src, "<?") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	i := 0
	for i < len(src) {
		lt := strings.IndexByte(src[i:], '<')
		if lt < 0 {
			b.WriteString(src[i:])
			return b.String()
		}
		b.WriteString(src[i : i+lt])
		i += lt
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "<![CDATA["):
			end := strings.Index(rest[9:], "]]>")
			j := len(src)
			if end >= 0 {
				j = i + 9 + end + 3
			}
			b.WriteString(src[i:j])
			i = j
		case strings.HasPrefix(rest, "<!--"):
			end := strings.Index(rest[4:], "-->")
			if end < 0 {
				i = len(src)
			} else {
				i += 4 + end + 3
			}
		case strings.HasPrefix(rest, "<?"):
			end := strings.Index(rest[2:], "?>")
			if end < 0 {
				i = len(src)
			} else {
				i += 2 + end + 2
			}
		default:
			b.WriteByte('<')
			i++
		}
	}
	return b.String()
}

// skipProlog advances past leading whitespace and any DOCTYPE declaration.
func (s *scanner) skipProlog() {
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case strings.HasPrefix(s.src[s.pos:], "<!") && !strings.HasPrefix(s.src[s.pos:], "<![CDATA["):
			s.skipDeclaration()
		default:
			return
		}
	}
}

// skipDeclaration skips a <!...> block, tolerating a DOCTYPE internal
// subset in square brackets.
func (s *scanner) skipDeclaration() {
	bracket := false
	for i := s.pos; i < len(s.src); i++ {
		switch s.src[i] {
		case '[':
			bracket = true
		case ']':
			bracket = false
		case '>':
			if !bracket {
				s.pos = i + 1
				return
			}
		}
	}
	s.pos = len(s.src)
}

// parseElement parses one element starting at '<'. For a non-self-closing
// element it first locates the matching end tag, then parses the content
// range in between.
func (s *scanner) parseElement(depth int) (*Node, error) {
	if depth > maxElementDepth {
		return nil, s.syntaxErr(s.pos, ErrIterationLimit, "element nesting too deep")
	}
	s.pos++ // consume '<'
	name, err := s.readName()
	if err != nil {
		return nil, err
	}
	node := &Node{Name: name, Attrs: make(map[string]string)}
	selfClosing, err := s.parseAttrs(node)
	if err != nil {
		return nil, err
	}
	if selfClosing {
		return node, nil
	}
	endOpen, err := s.findEndTag(name, s.pos)
	if err != nil {
		return nil, err
	}
	if err := s.parseContent(node, endOpen, depth); err != nil {
		return nil, err
	}
	s.pos = endOpen
	if gt := strings.IndexByte(s.src[s.pos:], '>'); gt >= 0 {
		s.pos += gt + 1
	} else {
		s.pos = len(s.src)
	}
	return node, nil
}

func (s *scanner) readName() (string, error) {
	start := s.pos
	if s.pos >= len(s.src) || !isNameStart(s.src[s.pos]) {
		return "", s.syntaxErr(start, ErrInvalidTagName, "")
	}
	s.pos++
	for s.pos < len(s.src) && isNameChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos], nil
}

// parseAttrs consumes attributes up to and including '>' or '/>'. Bare
// attributes without a value are kept with an empty value; unparseable
// bytes inside the tag are skipped rather than failing the element.
func (s *scanner) parseAttrs(node *Node) (selfClosing bool, err error) {
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return false, s.syntaxErr(s.pos, ErrMissingEndTag, "unterminated start tag <"+node.Name)
		}
		switch c := s.src[s.pos]; {
		case c == '>':
			s.pos++
			return false, nil
		case c == '/':
			if strings.HasPrefix(s.src[s.pos:], "/>") {
				s.pos += 2
				return true, nil
			}
			s.pos++
		case isNameStart(c):
			name, _ := s.readName()
			s.skipSpace()
			if s.pos < len(s.src) && s.src[s.pos] == '=' {
				s.pos++
				s.skipSpace()
				value, err := s.readAttrValue()
				if err != nil {
					return false, err
				}
				node.Attrs[name] = decodeEntities(value)
			} else {
				node.Attrs[name] = ""
			}
		default:
			s.pos++
		}
	}
}

func (s *scanner) readAttrValue() (string, error) {
	if s.pos >= len(s.src) {
		return "", s.syntaxErr(s.pos, ErrMissingEndTag, "unterminated attribute value")
	}
	quote := s.src[s.pos]
	if quote == '"' || quote == '\'' {
		s.pos++
		end := strings.IndexByte(s.src[s.pos:], quote)
		if end < 0 {
			return "", s.syntaxErr(s.pos, ErrMissingEndTag, "unterminated attribute value")
		}
		value := s.src[s.pos : s.pos+end]
		s.pos += end + 1
		return value, nil
	}
	// Unquoted value: read to the next whitespace or tag delimiter.
	start := s.pos
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n', '>', '/':
			return s.src[start:s.pos], nil
		}
		s.pos++
	}
	return s.src[start:], nil
}

// findEndTag scans forward from offset for the end tag matching name,
// tracking the nesting depth of same-named start tags and skipping over
// CDATA sections. The scan is bounded by an iteration ceiling proportional
// to the remaining input; exceeding it is a parse failure, never a hang.
func (s *scanner) findEndTag(name string, from int) (int, error) {
	limit := len(s.src) - from + 64
	depth := 0
	i := from
	for steps := 0; ; steps++ {
		if steps > limit {
			return 0, s.syntaxErr(from, ErrIterationLimit, "while scanning for </"+name+">")
		}
		lt := strings.IndexByte(s.src[i:], '<')
		if lt < 0 {
			return 0, s.syntaxErr(from, ErrMissingEndTag, "</"+name+">")
		}
		i += lt
		rest := s.src[i:]
		switch {
		case strings.HasPrefix(rest, "<![CDATA["):
			end := strings.Index(rest[9:], "]]>")
			if end < 0 {
				i = len(s.src)
			} else {
				i += 9 + end + 3
			}
		case strings.HasPrefix(rest, "</"):
			j := i + 2
			k := j
			for k < len(s.src) && isNameChar(s.src[k]) {
				k++
			}
			if s.src[j:k] == name {
				if depth == 0 {
					return i, nil
				}
				depth--
			}
			i = k
		case strings.HasPrefix(rest, "<!") || strings.HasPrefix(rest, "<?"):
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				i = len(s.src)
			} else {
				i += gt + 1
			}
		case len(rest) > 1 && isNameStart(rest[1]):
			j := i + 1
			k := j
			for k < len(s.src) && isNameChar(s.src[k]) {
				k++
			}
			next, self := skipPastTagClose(s.src, k)
			if s.src[j:k] == name && !self {
				depth++
			}
			i = next
		default:
			i++
		}
	}
}

// skipPastTagClose advances from inside a start tag to just past its '>',
// honoring quoted attribute values, and reports whether the tag was
// self-closing.
func skipPastTagClose(src string, from int) (next int, selfClosing bool) {
	var quote byte
	last := byte(0)
	for i := from; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '>':
			return i + 1, last == '/'
		default:
			if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
				last = c
			}
		}
	}
	return len(src), false
}

// parseContent fills node.Text and node.Children from the range up to the
// element's end tag. CDATA payloads are appended verbatim, without entity
// decoding; text outside CDATA is entity-decoded. Multiple CDATA sections
// in one element concatenate.
func (s *scanner) parseContent(node *Node, end, depth int) error {
	var text strings.Builder
	for s.pos < end {
		rest := s.src[s.pos:end]
		lt := strings.IndexByte(rest, '<')
		if lt < 0 {
			text.WriteString(decodeEntities(rest))
			s.pos = end
			break
		}
		if lt > 0 {
			text.WriteString(decodeEntities(rest[:lt]))
			s.pos += lt
			continue
		}
		switch {
		case strings.HasPrefix(rest, "<![CDATA["):
			cdEnd := strings.Index(rest[9:], "]]>")
			if cdEnd < 0 {
				text.WriteString(rest[9:])
				s.pos = end
			} else {
				text.WriteString(rest[9 : 9+cdEnd])
				s.pos += 9 + cdEnd + 3
			}
		case strings.HasPrefix(rest, "</"), strings.HasPrefix(rest, "<!"), strings.HasPrefix(rest, "<?"):
			// Stray end tag or leftover declaration; skip it.
			gt := strings.IndexByte(rest, '>')
			if gt < 0 {
				s.pos = end
			} else {
				s.pos += gt + 1
			}
		case len(rest) > 1 && isNameStart(rest[1]):
			child, err := s.parseElement(depth + 1)
			if err != nil {
				return err
			}
			node.Children = append(node.Children, child)
		default:
			// A literal '<' that does not open anything.
			text.WriteByte('<')
			s.pos++
		}
	}
	node.Text = text.String()
	return nil
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func isNameStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == ':' || c == '_' || c == '-'
}
