package urlnorm

import (
	"strconv"
	"strings"

	"urlnorm/pkg/serrors"
)

// DefaultPort returns the registered default port of scheme.
func DefaultPort(scheme string) (string, bool) {
	switch scheme {
	case "http", "itms", "ws":
		return "80", true
	case "https", "wss":
		return "443", true
	case "gopher":
		return "70", true
	case "news", "nntp":
		return "119", true
	case "snews", "snntp":
		return "563", true
	case "ftp":
		return "21", true
	case "telnet":
		return "23", true
	case "prospero":
		return "191", true
	}

	return "", false
}

// NormalizeAuthority normalizes a "[userinfo@]host[:port]" authority for the
// given (already lower-cased) scheme. The host is lower-cased, stripped of one
// trailing dot and IDN-decoded; an all-digit host is read as an IPv4 integer.
// Userinfo is kept verbatim and the port is dropped when it is the scheme's
// default.
//
// An empty netloc is returned as is; callers that require an authority must
// check for it.
func NormalizeAuthority(scheme, netloc string) (string, error) {
	if netloc == "" {
		return netloc, nil
	}

	userinfo, hostport := "", netloc
	if i := strings.LastIndexByte(netloc, '@'); i >= 0 {
		userinfo, hostport = netloc[:i], netloc[i+1:]
	}

	host, port, ok := splitHostPort(hostport)
	if !ok {
		return "", serrors.With(ErrInvalidURL, "no host in netloc %q", netloc)
	}

	if isDigits(host) {
		ip, err := hostToIP(host)
		if err != nil {
			return "", serrors.Wrap(ErrInvalidURL, err, "host %q does not escape to a valid ip", host)
		}
		host = ip
	}

	host = strings.TrimSuffix(host, ".")

	if host == "" || (!strings.Contains(host, ".") && !isBracketed(host)) {
		return "", serrors.With(ErrInvalidURL, "host %q is not valid", host)
	}

	host, err := DecodeHost(strings.ToLower(host))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(netloc))
	if userinfo != "" {
		b.WriteString(userinfo)
		b.WriteByte('@')
	}
	b.WriteString(host)
	if def, _ := DefaultPort(scheme); port != "" && port != def {
		b.WriteByte(':')
		b.WriteString(port)
	}

	return b.String(), nil
}

// splitHostPort splits on the last ':' outside an IPv6 literal and checks the
// host is either a non-empty run without ':', '[' and ']' or a bracketed IPv6
// literal.
func splitHostPort(hostport string) (host, port string, ok bool) {
	host = hostport
	if i := strings.LastIndexByte(hostport, ':'); i > strings.LastIndexByte(hostport, ']') {
		host, port = hostport[:i], hostport[i+1:]
	}

	if strings.HasPrefix(host, "[") {
		return host, port, isBracketed(host) && isIPv6Literal(host[1:len(host)-1])
	}

	return host, port, host != "" && !strings.ContainsAny(host, ":[]")
}

func hostToIP(host string) (string, error) {
	n, err := strconv.ParseInt(host, 10, 64)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrOutOfRange, err, "parsing integer host")
	}

	return IntToIP(n)
}

func isBracketed(host string) bool {
	return len(host) >= 2 && host[0] == '[' && host[len(host)-1] == ']'
}

func isIPv6Literal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; !ishex(c) && c != ':' && c != '.' {
			return false
		}
	}

	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
