package urlnorm

import (
	"strings"

	"urlnorm/pkg/serrors"
)

// ErrInvalidURL is the kind of every error returned by this package for input
// that cannot be normalized.
var ErrInvalidURL = serrors.ErrInvalidURL //nolint: gochecknoglobals

// Normalize returns the normalized form of raw. The returned string always
// equals NormalizeComponents applied to Split(raw), reassembled.
func Normalize(raw string) (string, error) {
	c, err := Split(raw)
	if err != nil {
		return "", err
	}

	c, err = NormalizeComponents(c)
	if err != nil {
		return "", err
	}

	return c.String(), nil
}

// NormalizeComponents normalizes already split URL components. The scheme and
// the authority are mandatory.
func NormalizeComponents(c Components) (Components, error) {
	scheme := strings.ToLower(c.Scheme)
	if scheme == "" {
		return Components{}, serrors.With(ErrInvalidURL, "missing URL scheme")
	}

	authority, err := NormalizeAuthority(scheme, c.Authority)
	if err != nil {
		return Components{}, err
	}
	if authority == "" {
		return Components{}, serrors.With(ErrInvalidURL, "missing netloc")
	}

	return Components{
		Scheme:    scheme,
		Authority: authority,
		Path:      NormalizePath(scheme, c.Path),
		Params:    UnquoteParams(c.Params),
		Query:     UnquoteQuery(c.Query),
		Fragment:  UnquoteFragment(c.Fragment),
	}, nil
}

// Equal reports whether a and b normalize to the same URL.
func Equal(a, b string) (bool, error) {
	na, err := Normalize(a)
	if err != nil {
		return false, err
	}
	nb, err := Normalize(b)
	if err != nil {
		return false, err
	}

	return na == nb, nil
}
