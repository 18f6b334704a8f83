package msgdef

import "strings"

// scanner walks a single line of a definition.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) eof() bool {
	return sc.pos >= len(sc.s)
}

func (sc *scanner) peek() byte {
	if sc.eof() {
		return 0
	}
	return sc.s[sc.pos]
}

func (sc *scanner) skipSpace() {
	for !sc.eof() && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// until consumes bytes up to the first one in stop or whitespace.
func (sc *scanner) until(stop string) string {
	start := sc.pos
	for !sc.eof() {
		c := sc.s[sc.pos]
		if isSpace(c) || strings.IndexByte(stop, c) >= 0 {
			break
		}
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

func (sc *scanner) rest() string {
	r := sc.s[sc.pos:]
	sc.pos = len(sc.s)
	return r
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// splitComment separates code from a trailing # comment. A # inside a quoted
// string does not start a comment.
func splitComment(line string) (code, comment string) {
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			escaped = false
		case quote != 0 && c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i], strings.TrimSpace(line[i+1:])
		}
	}
	return line, ""
}

// splitList splits the body of an array literal on commas outside quotes.
func splitList(body string) []string {
	var items []string
	var quote byte
	escaped := false
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			escaped = false
		case quote != 0 && c == '\\':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			items = append(items, strings.TrimSpace(body[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(body[start:]); last != "" || len(items) > 0 {
		items = append(items, last)
	}
	return items
}
