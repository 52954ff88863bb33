package urlnorm

import (
	"strings"

	"urlnorm/pkg/serrors"
)

// Components is the six-part decomposition of a URL:
// scheme://authority/path;params?query#fragment.
type Components struct {
	Scheme    string
	Authority string
	Path      string
	Params    string
	Query     string
	Fragment  string
}

// String reassembles the components. Empty params, query and fragment are
// omitted together with their delimiter. When an authority is present the path
// is made absolute.
func (c Components) String() string {
	path := c.Path
	if c.Params != "" {
		path += ";" + c.Params
	}

	var b strings.Builder
	b.Grow(len(c.Scheme) + len(c.Authority) + len(path) + len(c.Query) + len(c.Fragment) + 8)
	if c.Scheme != "" {
		b.WriteString(c.Scheme)
		b.WriteByte(':')
	}
	switch {
	case c.Authority != "":
		b.WriteString("//")
		b.WriteString(c.Authority)
		if path != "" && path[0] != '/' {
			b.WriteByte('/')
		}
	case strings.HasPrefix(path, "//"):
		// keep the path from being read back as an authority
		b.WriteString("//")
	}
	b.WriteString(path)
	if c.Query != "" {
		b.WriteByte('?')
		b.WriteString(c.Query)
	}
	if c.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(c.Fragment)
	}

	return b.String()
}

// Split decomposes raw into its components without normalizing any of them,
// except for lower-casing the scheme.
//
// Leading control characters and spaces are dropped, as are tabs and line
// breaks anywhere in raw. The authority is only recognized after "//" and runs
// up to the first '/', '?' or '#'. The fragment is split off at the first '#',
// then the query at the first '?'. Parameters are split from the last path
// segment for schemes that use them. An authority with unbalanced IPv6
// brackets is an ErrInvalidURL.
func Split(raw string) (Components, error) {
	raw = strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' })
	if strings.ContainsAny(raw, "\t\r\n") {
		raw = strings.Map(func(r rune) rune {
			if r == '\t' || r == '\r' || r == '\n' {
				return -1
			}

			return r
		}, raw)
	}

	var c Components
	if i := strings.IndexByte(raw, ':'); i > 0 && isScheme(raw[:i]) {
		c.Scheme, raw = strings.ToLower(raw[:i]), raw[i+1:]
	}

	if strings.HasPrefix(raw, "//") {
		end := len(raw)
		if i := strings.IndexAny(raw[2:], "/?#"); i >= 0 {
			end = i + 2
		}
		c.Authority, raw = raw[2:end], raw[end:]
		if strings.Contains(c.Authority, "[") != strings.Contains(c.Authority, "]") {
			return Components{}, serrors.With(ErrInvalidURL, "invalid IPv6 URL %q", c.Authority)
		}
	}

	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw, c.Fragment = raw[:i], raw[i+1:]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw, c.Query = raw[:i], raw[i+1:]
	}
	if usesParams(c.Scheme) {
		raw, c.Params = splitParams(raw)
	}
	c.Path = raw

	return c, nil
}

// splitParams splits ";params" off the last segment of path.
func splitParams(path string) (string, string) {
	start := strings.LastIndexByte(path, '/')
	if start < 0 {
		start = 0
	}
	i := strings.IndexByte(path[start:], ';')
	if i < 0 {
		return path, ""
	}
	i += start

	return path[:i], path[i+1:]
}

func usesParams(scheme string) bool {
	switch scheme {
	case "", "ftp", "hdl", "prospero", "http", "imap", "https", "shttp",
		"rtsp", "rtspu", "sip", "sips", "mms", "sftp", "tel":
		return true
	}

	return false
}

func isScheme(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isAlpha(c) && !('0' <= c && c <= '9') && c != '+' && c != '-' && c != '.' {
			return false
		}
	}

	return true
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
