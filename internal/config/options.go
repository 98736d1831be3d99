package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every configuration validation error.
var ErrInvalid = errors.New("invalid configuration")

// OffsetBase selects how line offsets are printed.
type OffsetBase int

const (
	OffsetHex OffsetBase = iota
	OffsetDec
)

// ParseOffsetBase accepts "hex" or "dec".
func ParseOffsetBase(s string) (OffsetBase, error) {
	switch s {
	case "hex":
		return OffsetHex, nil
	case "dec":
		return OffsetDec, nil
	}
	return OffsetHex, fmt.Errorf("%w: invalid offset-format: %s", ErrInvalid, s)
}

func (b OffsetBase) String() string {
	if b == OffsetDec {
		return "dec"
	}
	return "hex"
}

const (
	DefaultBytesPerLine = 16
	DefaultGroup        = 1
	DefaultOffsetWidth  = 8
)

// Options is the validated rendering configuration handed to the formatter.
// It is treated as read-only once Validate has succeeded.
type Options struct {
	BytesPerLine int
	Group        int
	OffsetWidth  int
	OffsetBase   OffsetBase

	Uppercase          bool
	ASCIIOnly          bool
	HexOnly            bool
	SwapColumns        bool
	HideOffset         bool
	ShowEscapes        bool
	DotForNonPrintable bool

	// Color is the already-negotiated decision; nothing below the CLI
	// looks at the terminal or the environment.
	Color bool
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		BytesPerLine:       DefaultBytesPerLine,
		Group:              DefaultGroup,
		OffsetWidth:        DefaultOffsetWidth,
		OffsetBase:         OffsetHex,
		DotForNonPrintable: true,
	}
}

// Validate rejects conflicting or out-of-range settings and normalizes the
// ones that imply others: escapes take precedence over dot substitution.
func (o *Options) Validate() error {
	if o.ASCIIOnly && o.HexOnly {
		return fmt.Errorf("%w: options --ascii-only and --hex-only are mutually exclusive", ErrInvalid)
	}
	if o.BytesPerLine <= 0 {
		return fmt.Errorf("%w: bytes-per-line must be positive", ErrInvalid)
	}
	if o.Group <= 0 {
		return fmt.Errorf("%w: group must be positive", ErrInvalid)
	}
	if o.OffsetWidth <= 0 {
		return fmt.Errorf("%w: offset width must be positive", ErrInvalid)
	}
	if o.ShowEscapes {
		o.DotForNonPrintable = false
	}
	return nil
}

// ShowHex reports whether the hex field is rendered.
func (o Options) ShowHex() bool { return !o.ASCIIOnly }

// ShowASCII reports whether the printable-character field is rendered.
func (o Options) ShowASCII() bool { return !o.HexOnly }
