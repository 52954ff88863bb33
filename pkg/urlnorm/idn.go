package urlnorm

import (
	"strings"

	"urlnorm/pkg/serrors"

	"golang.org/x/net/idna"
)

const acePrefix = "xn--"

// DecodeLabel converts a single ACE ("xn--") domain label to Unicode. Labels
// without the prefix are returned unchanged. A label that is not valid
// Punycode, or that does not encode back to itself, is an ErrInvalidURL.
func DecodeLabel(label string) (string, error) {
	if !strings.HasPrefix(label, acePrefix) {
		return label, nil
	}

	u, err := idna.Punycode.ToUnicode(label)
	if err != nil {
		return "", serrors.Wrap(ErrInvalidURL, err, "error converting subdomain %q to IDN", label)
	}
	if u == "" {
		return "", serrors.With(ErrInvalidURL, "error converting subdomain %q to IDN", label)
	}

	// ToUnicode is lenient with labels like "xn--abc-"; round-trip to reject them
	ace, err := idna.Punycode.ToASCII(u)
	if err != nil || !strings.EqualFold(ace, label) {
		return "", serrors.With(ErrInvalidURL, "error converting subdomain %q to IDN", label)
	}

	return u, nil
}

// DecodeHost decodes every dot-separated label of host with DecodeLabel when
// at least one label carries the ACE prefix.
func DecodeHost(host string) (string, error) {
	if !strings.Contains(host, acePrefix) {
		return host, nil
	}

	labels := strings.Split(host, ".")
	for i, label := range labels {
		decoded, err := DecodeLabel(label)
		if err != nil {
			return "", err
		}
		labels[i] = decoded
	}

	return strings.Join(labels, "."), nil
}
