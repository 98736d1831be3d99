package util

import (
	"fmt"
	"strconv"
)

// IsPrintable reports whether b is in the printable ASCII range [32, 126].
func IsPrintable(b byte) bool {
	return b >= 32 && b <= 126
}

// ParseUint64 parses a decimal number, or a hex number when prefixed with 0x.
// A leading zero does not switch to octal.
func ParseUint64(s string) (uint64, error) {
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		digits = s[2:]
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value: %q", s)
	}
	return v, nil
}
