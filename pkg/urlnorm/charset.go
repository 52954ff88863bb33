package urlnorm

import "strings"

// Charset is a set of ASCII characters that must stay percent-escaped within
// a URL component.
type Charset string

const (
	// PathUnsafe is kept escaped in the path.
	PathUnsafe Charset = "/?;%+#"
	// ParamsUnsafe is kept escaped in the ";parameters" component.
	ParamsUnsafe Charset = "?=+%#;"
	// QueryUnsafe is kept escaped in the query string.
	QueryUnsafe Charset = "?&=+%#"
	// FragmentUnsafe is kept escaped in the fragment.
	FragmentUnsafe Charset = "+%#"
)

// Contains reports whether b belongs to the set.
func (c Charset) Contains(b byte) bool {
	return strings.IndexByte(string(c), b) >= 0
}
