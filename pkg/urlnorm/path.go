package urlnorm

import "strings"

// IsHierarchical reports whether scheme uses "/"-segmented paths subject to
// dot-segment collapsing. The empty scheme counts as hierarchical.
func IsHierarchical(scheme string) bool {
	switch scheme {
	case "http", "https", "ws", "wss", "itms",
		"news", "snews", "nntp", "snntp", "ftp", "file", "":
		return true
	}

	return false
}

// NormalizePath collapses "." and ".." segments and repeated slashes when
// scheme is hierarchical, then unquotes the path with PathUnsafe. An empty
// result becomes "/".
func NormalizePath(scheme, path string) string {
	if IsHierarchical(scheme) {
		path = CollapsePath(path)
		path = UnquotePath(path)
		// unquoting may reveal "%2E" dot segments
		path = CollapsePath(path)
	} else {
		path = UnquotePath(path)
	}

	if path == "" {
		return "/"
	}

	return path
}

// CollapsePath resolves dot segments and drops empty segments in a single
// pass:
//   - "/./" and a trailing "/." become "/"
//   - "//" becomes "/"
//   - a segment followed by "/../" (or a trailing "/..") is removed together
//     with the "..".
//
// A ".." with nothing left to remove is kept, unless it is the last segment.
// The leading slash of absolute paths is preserved, and the result ends with
// "/" when the input ended with "/", "/." or "/..".
func CollapsePath(path string) string {
	if path == "" {
		return path
	}

	segments := strings.Split(path, "/")
	stack := make([]string, 0, len(segments))
	dir := false
	for i, seg := range segments {
		last := i == len(segments)-1
		switch seg {
		case "", ".":
			dir = true
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else if !last {
				stack = append(stack, seg)
			}
			dir = true
		default:
			stack = append(stack, seg)
			dir = false
		}
	}

	var b strings.Builder
	b.Grow(len(path))
	absolute := path[0] == '/'
	if absolute {
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(stack, "/"))
	if dir && len(stack) > 0 {
		b.WriteByte('/')
	}

	return b.String()
}
