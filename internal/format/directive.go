package format

import (
	"github.com/vitaminmoo/hexview/internal/config"
	"github.com/vitaminmoo/hexview/internal/util"
)

// Directive says how a single byte is shown in the ASCII field.
type Directive int

const (
	Printable   Directive = iota // the byte itself
	Dot                          // '.'
	Placeholder                  // '?'
	EscapeNamed                  // \n, \r or \t
	EscapeHex                    // \xHH
)

func (d Directive) String() string {
	switch d {
	case Printable:
		return "printable"
	case Dot:
		return "dot"
	case Placeholder:
		return "placeholder"
	case EscapeNamed:
		return "escape-named"
	case EscapeHex:
		return "escape-hex"
	}
	return "unknown"
}

// Classify returns the directive for b under opts.
func Classify(b byte, opts config.Options) Directive {
	if util.IsPrintable(b) {
		return Printable
	}
	if opts.ShowEscapes {
		switch b {
		case '\n', '\r', '\t':
			return EscapeNamed
		}
		return EscapeHex
	}
	if opts.DotForNonPrintable {
		return Dot
	}
	return Placeholder
}

// Style is the highlight used for a byte rendered under d.
func (d Directive) Style() Style {
	if d == Printable {
		return StylePrintable
	}
	return StyleNonPrintable
}

// hexStyle classifies a byte for the hex field, which only distinguishes
// printable from non-printable.
func hexStyle(b byte) Style {
	if util.IsPrintable(b) {
		return StylePrintable
	}
	return StyleNonPrintable
}

// appendRepresentation appends the ASCII-field text of b under d. Escapes are
// always lowercase.
func appendRepresentation(dst []byte, b byte, d Directive) []byte {
	switch d {
	case Printable:
		return append(dst, b)
	case Dot:
		return append(dst, '.')
	case Placeholder:
		return append(dst, '?')
	case EscapeNamed:
		switch b {
		case '\n':
			return append(dst, `\n`...)
		case '\r':
			return append(dst, `\r`...)
		default:
			return append(dst, `\t`...)
		}
	default:
		return append(dst, '\\', 'x', lowerDigits[b>>4], lowerDigits[b&0x0f])
	}
}
