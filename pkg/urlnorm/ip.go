package urlnorm

import (
	"encoding/binary"
	"net/netip"

	"urlnorm/pkg/serrors"
)

// MaxIPv4 is the largest integer IntToIP accepts.
const MaxIPv4 = 0xFFFFFFFF

// IntToIP renders n as a dotted-quad IPv4 address. n must be between 0 and
// MaxIPv4 inclusive, otherwise an ErrOutOfRange error is returned.
func IntToIP(n int64) (string, error) {
	if n < 0 || n > MaxIPv4 {
		return "", serrors.With(serrors.ErrOutOfRange, "expected int between 0 and %d inclusive, got %d", MaxIPv4, n)
	}

	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n)) //nolint: gosec

	return netip.AddrFrom4(b).String(), nil
}
