package specpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrMalformedPath = errors.New("malformed path")

// Path is one segment of a path key, linked to the rest of the key.
// A nil *Path is the root.
type Path struct {
	Field    *string // property name
	Index    *int    // element step with an explicit index, e.g. [3]
	IndexAll bool    // element step [*]
	Next     *Path
}

// Field returns a single property segment.
func Field(name string) *Path {
	return &Path{Field: &name}
}

// Elem returns a single [*] element segment.
func Elem() *Path {
	return &Path{IndexAll: true}
}

// IsElem reports whether the segment steps into an array element shape.
func (p *Path) IsElem() bool {
	return p != nil && (p.Index != nil || p.IndexAll)
}

// Len returns the number of segments.
func (p *Path) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// String returns the canonical key for the path starting at p.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if x.Field != nil {
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
			continue
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString returns the canonical form of this segment alone.
func (p *Path) SegmentString() string {
	switch {
	case p == nil:
		return ""
	case p.Field != nil:
		return quoteField(*p.Field)
	case p.IndexAll:
		return "[*]"
	case p.Index != nil:
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

// Append returns a copy of p with q's segments added at the end.
func (p *Path) Append(q *Path) *Path {
	var head, tail *Path
	add := func(x *Path) {
		seg := x.copySegment()
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
	}
	for x := p; x != nil; x = x.Next {
		add(x)
	}
	for x := q; x != nil; x = x.Next {
		add(x)
	}
	return head
}

func (p *Path) copySegment() *Path {
	res := &Path{IndexAll: p.IndexAll}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

// Parse parses a path key. The empty key parses to nil, the root.
func Parse(key string) (*Path, error) {
	if key == "" {
		return nil, nil
	}
	var head, tail *Path
	i := 0
	afterDot := false
	for i < len(key) {
		var seg *Path
		var err error
		switch c := key[i]; {
		case c == '[':
			if afterDot {
				return nil, malformed(key, i, "element step after '.'")
			}
			seg, i, err = parseElem(key, i)
		case c == '.':
			return nil, malformed(key, i, "empty segment")
		case head != nil && !afterDot:
			return nil, malformed(key, i, "expected '.' or '['")
		default:
			seg, i, err = parseField(key, i)
		}
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = seg
		} else {
			tail.Next = seg
		}
		tail = seg
		afterDot = false
		if i < len(key) && key[i] == '.' {
			afterDot = true
			i++
		}
	}
	if afterDot {
		return nil, malformed(key, len(key), "trailing '.'")
	}
	return head, nil
}

// MustParse is like Parse but panics on malformed keys.
func MustParse(key string) *Path {
	p, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return p
}

func parseElem(key string, i int) (*Path, int, error) {
	end := strings.IndexByte(key[i:], ']')
	if end < 0 {
		return nil, 0, malformed(key, i, "unterminated '['")
	}
	inner := key[i+1 : i+end]
	next := i + end + 1
	if inner == "*" {
		return &Path{IndexAll: true}, next, nil
	}
	if inner == "" || strings.TrimLeft(inner, "0123456789") != "" {
		return nil, 0, malformed(key, i, fmt.Sprintf("invalid index %q", inner))
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return nil, 0, malformed(key, i, fmt.Sprintf("invalid index %q", inner))
	}
	return &Path{Index: &n}, next, nil
}

func parseField(key string, i int) (*Path, int, error) {
	if key[i] == '"' {
		q, err := strconv.QuotedPrefix(key[i:])
		if err != nil {
			return nil, 0, malformed(key, i, "unterminated quoted field")
		}
		f, err := strconv.Unquote(q)
		if err != nil {
			return nil, 0, malformed(key, i, "bad quoted field")
		}
		return &Path{Field: &f}, i + len(q), nil
	}
	j := i
	for j < len(key) {
		r, sz := utf8.DecodeRuneInString(key[j:])
		if r == '.' || r == '[' {
			break
		}
		if r == ']' || r == '"' || unicode.IsSpace(r) || (r == utf8.RuneError && sz == 1) {
			return nil, 0, malformed(key, j, fmt.Sprintf("unexpected %q in field", r))
		}
		j += sz
	}
	f := key[i:j]
	return &Path{Field: &f}, j, nil
}

func malformed(key string, off int, msg string) error {
	return fmt.Errorf("%w %q at offset %d: %s", ErrMalformedPath, key, off, msg)
}

func quoteField(f string) string {
	if needsQuote(f) {
		return strconv.Quote(f)
	}
	return f
}

func needsQuote(f string) bool {
	if f == "" || !utf8.ValidString(f) {
		return true
	}
	for _, r := range f {
		switch r {
		case '.', '[', ']', '"':
			return true
		}
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// Split splits a key into its first segment and the remaining key.
//
// Examples:
//   - Split("a.b.c") → ("a", "b.c")
//   - Split("a[*].b") → ("a", "[*].b")
//   - Split("") → ("", "")
func Split(key string) (first, rest string, err error) {
	p, err := Parse(key)
	if err != nil || p == nil {
		return "", "", err
	}
	return p.SegmentString(), p.Next.String(), nil
}

// Join joins two keys into one.
func Join(prefix, suffix string) (string, error) {
	p, err := Parse(prefix)
	if err != nil {
		return "", err
	}
	q, err := Parse(suffix)
	if err != nil {
		return "", err
	}
	return p.Append(q).String(), nil
}
