// Package format renders byte windows as hex dump lines.
package format

import (
	"math/bits"
	"strconv"

	"github.com/vitaminmoo/hexview/internal/config"
)

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"

	offsetSeparator = ": "
)

// Formatter renders one output line per byte window. It keeps no state
// between calls, so the same input always yields the same bytes.
type Formatter struct {
	opts    config.Options
	palette Palette
	digits  string
}

// New returns a Formatter for opts, which must already be validated.
func New(opts config.Options) *Formatter {
	f := &Formatter{
		opts:    opts,
		palette: NewPalette(opts.Color),
		digits:  lowerDigits,
	}
	if opts.Uppercase {
		f.digits = upperDigits
	}
	return f
}

// Options returns the configuration the formatter was built with.
func (f *Formatter) Options() config.Options { return f.opts }

// AppendLine appends the rendered line for data, whose first byte sits at
// offset in the stream, and returns the extended buffer. data holds between 1
// and BytesPerLine bytes; it is shorter than a full line only at the end of
// the stream.
func (f *Formatter) AppendLine(dst []byte, offset uint64, data []byte) []byte {
	if len(data) > f.opts.BytesPerLine {
		data = data[:f.opts.BytesPerLine]
	}

	if !f.opts.HideOffset {
		dst = f.appendOffset(dst, offset)
	}

	switch {
	case !f.opts.ShowASCII():
		dst = f.appendHex(dst, data)
	case !f.opts.ShowHex():
		dst = f.appendASCII(dst, data)
	case f.opts.SwapColumns:
		dst = f.appendASCII(dst, data)
		dst = append(dst, ' ')
		dst = f.appendHex(dst, data)
	default:
		dst = f.appendHex(dst, data)
		dst = append(dst, ' ')
		dst = f.appendASCII(dst, data)
	}

	if f.palette.Enabled() {
		dst = append(dst, f.palette.Reset()...)
	}
	return append(dst, '\n')
}

func (f *Formatter) appendOffset(dst []byte, offset uint64) []byte {
	if f.opts.OffsetBase == config.OffsetDec {
		dst = strconv.AppendUint(dst, offset, 10)
		return append(dst, offsetSeparator...)
	}

	// Pad to the configured width; wider values are printed in full.
	n := max((bits.Len64(offset)+3)/4, 1)
	for i := n; i < f.opts.OffsetWidth; i++ {
		dst = append(dst, '0')
	}
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, f.digits[(offset>>(uint(i)*4))&0x0f])
	}
	return append(dst, offsetSeparator...)
}

// appendHex renders every slot of a full line so the field has the same
// width on a short final line.
func (f *Formatter) appendHex(dst []byte, data []byte) []byte {
	bpl := f.opts.BytesPerLine
	group := f.opts.Group
	var unit [2]byte

	for i := 0; i < bpl; i++ {
		if i < len(data) {
			b := data[i]
			unit[0], unit[1] = f.digits[b>>4], f.digits[b&0x0f]
			dst = f.palette.appendStyled(dst, hexStyle(b), unit[:])
		} else {
			dst = append(dst, ' ', ' ')
		}

		if i == bpl-1 {
			break
		}
		// A group of one is no grouping at all.
		if group > 1 && i%group == group-1 {
			dst = append(dst, ' ', ' ')
		} else {
			dst = append(dst, ' ')
		}
	}
	return dst
}

// appendASCII pads with one space per missing byte, not per missing
// character, so escapes widen the field only on lines that contain them.
func (f *Formatter) appendASCII(dst []byte, data []byte) []byte {
	var unit [4]byte

	for _, b := range data {
		d := Classify(b, f.opts)
		dst = f.palette.appendStyled(dst, d.Style(), appendRepresentation(unit[:0], b, d))
	}
	for i := len(data); i < f.opts.BytesPerLine; i++ {
		dst = append(dst, ' ')
	}
	return dst
}
