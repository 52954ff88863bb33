package urlnorm

import (
	"strings"
	"unicode/utf8"
)

const upperhex = "0123456789ABCDEF"

// Unquote decodes every well-formed %XX sequence in s, except the ones that
// decode to a control character (below 0x20) or to a member of unsafe. Those
// are kept escaped and rewritten with upper-case hex digits. A '%' that is not
// followed by two hex digits is left as is.
//
// The decoded bytes are read back as UTF-8. Bytes that do not form a valid
// UTF-8 sequence are re-emitted as upper-case percent-escapes, so the result is
// always valid UTF-8. A decoded hex digit that would complete a new escape
// with a preceding literal '%' is kept escaped too, which makes
// Unquote(Unquote(s, u), u) == Unquote(s, u).
func Unquote(s string, unsafe Charset) string {
	if strings.IndexByte(s, '%') < 0 && utf8.ValidString(s) {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b := unhex(s[i+1])<<4 | unhex(s[i+2])
			if b < 0x20 || unsafe.Contains(b) || completesEscape(buf, b) {
				buf = append(buf, '%', upperhex[b>>4], upperhex[b&0x0F])
			} else {
				buf = append(buf, b)
			}
			i += 2

			continue
		}
		buf = append(buf, c)
	}

	return escapeInvalidUTF8(buf)
}

// UnquotePath unquotes a path with PathUnsafe.
func UnquotePath(s string) string { return Unquote(s, PathUnsafe) }

// UnquoteParams unquotes path parameters with ParamsUnsafe.
func UnquoteParams(s string) string { return Unquote(s, ParamsUnsafe) }

// UnquoteQuery unquotes a query string with QueryUnsafe.
func UnquoteQuery(s string) string { return Unquote(s, QueryUnsafe) }

// UnquoteFragment unquotes a fragment with FragmentUnsafe.
func UnquoteFragment(s string) string { return Unquote(s, FragmentUnsafe) }

// completesEscape reports whether appending the hex digit b to buf would form
// a %XX sequence out of a literal '%'.
func completesEscape(buf []byte, b byte) bool {
	if !ishex(b) {
		return false
	}
	n := len(buf)

	return (n >= 1 && buf[n-1] == '%') || (n >= 2 && buf[n-2] == '%' && ishex(buf[n-1]))
}

func escapeInvalidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[b[0]>>4])
			sb.WriteByte(upperhex[b[0]&0x0F])
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}

	return sb.String()
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}

	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}

	return 0
}
