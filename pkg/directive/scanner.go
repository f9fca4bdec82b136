package directive

import (
	"iter"
	"strings"
)

// Matcher recognises a single directive family.
//
// Parse receives the text immediately following Prefix. It returns the number
// of bytes consumed (0 when the text does not match the directive grammar) and
// whether the parsed record is valid.
type Matcher[T any] struct {
	Prefix string
	Parse  func(rest string) (rec T, n int, valid bool)
}

// All yields every valid record in text, scanning left to right over
// non-overlapping matches.
func (m Matcher[T]) All(text string) iter.Seq[T] {
	return func(yield func(T) bool) {
		pos := 0
		for pos < len(text) {
			idx := strings.Index(text[pos:], m.Prefix)
			if idx < 0 {
				return
			}
			start := pos + idx
			bodyStart := start + len(m.Prefix)

			rec, n, valid := m.Parse(text[bodyStart:])
			if n == 0 {
				pos = start + 1
				continue
			}
			pos = bodyStart + n
			if valid && !yield(rec) {
				return
			}
		}
	}
}

// cursor walks a directive body.
type cursor struct {
	s   string
	pos int
}

// lit consumes lit if the remaining input starts with it.
func (c *cursor) lit(lit string) bool {
	if !strings.HasPrefix(c.s[c.pos:], lit) {
		return false
	}
	c.pos += len(lit)
	return true
}

// group reads up to (not including) the next closing brace.
// A group is unterminated if no brace follows; nonEmpty additionally rejects "".
func (c *cursor) group(nonEmpty bool) (string, bool) {
	end := strings.IndexByte(c.s[c.pos:], '}')
	if end < 0 || (nonEmpty && end == 0) {
		return "", false
	}
	v := c.s[c.pos : c.pos+end]
	c.pos += end
	return v, true
}

// digits reads one or more ASCII decimal digits.
func (c *cursor) digits() (string, bool) {
	end := c.pos
	for end < len(c.s) && isDigit(c.s[end]) {
		end++
	}
	if end == c.pos {
		return "", false
	}
	v := c.s[c.pos:end]
	c.pos = end
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
