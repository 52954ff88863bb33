// Package urlnorm normalizes URLs into a canonical textual form so that
// syntactically different strings denoting the same resource compare equal.
//
// Normalize applies, in order:
//   - lower-casing of the scheme and host
//   - authority parsing into userinfo, host and port
//   - decoding of hosts written as a bare 32-bit integer into dotted-quad form
//   - removal of a single trailing dot from the host
//   - decoding of ACE ("xn--") labels into Unicode
//   - elision of the scheme's default port
//   - collapsing of ".", ".." and empty path segments for hierarchical schemes
//   - percent-escape decoding, keeping each component's unsafe characters
//     escaped with upper-case hex digits
//
// Query parameters are never reordered since their order can be meaningful to
// the origin server.
//
// All functions are pure and safe for concurrent use.
package urlnorm
