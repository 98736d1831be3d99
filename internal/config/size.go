package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vitaminmoo/hexview/internal/util"
)

// Size is a byte count given on the command line. It accepts plain decimal,
// 0x-prefixed hex, or a humanized size such as "4KiB" or "1MB".
type Size uint64

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Size) UnmarshalText(text []byte) error {
	str := strings.TrimSpace(string(text))
	if v, err := util.ParseUint64(str); err == nil {
		*s = Size(v)
		return nil
	}
	v, err := humanize.ParseBytes(str)
	if err != nil {
		return fmt.Errorf("%w: invalid numeric value: %s", ErrInvalid, str)
	}
	*s = Size(v)
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%d", uint64(s))
}
