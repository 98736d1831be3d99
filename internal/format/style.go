package format

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style is the highlight category of one rendered unit.
type Style int

const (
	StyleDefault Style = iota
	StylePrintable
	StyleNonPrintable

	numStyles
)

func (s Style) String() string {
	switch s {
	case StylePrintable:
		return "printable"
	case StyleNonPrintable:
		return "non-printable"
	}
	return "default"
}

// Sequence is the escape pair that brackets one styled unit. Both halves are
// empty when color is disabled.
type Sequence struct {
	Open  string
	Close string
}

// Palette maps each Style to its Sequence. It is computed once and is safe to
// copy.
type Palette struct {
	enabled bool
	seqs    [numStyles]Sequence
	reset   string
}

// lipgloss renders the marker between a style's open and close sequences.
const marker = "\x00"

// NewPalette builds the palette. With enabled false every Style maps to an
// empty Sequence and styling is a no-op.
func NewPalette(enabled bool) Palette {
	p := Palette{enabled: enabled}
	if !enabled {
		return p
	}

	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI))
	r.SetColorProfile(termenv.ANSI)

	styles := map[Style]lipgloss.Style{
		StylePrintable:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		StyleNonPrintable: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	}
	for tok, st := range styles {
		open, closing, _ := strings.Cut(st.Render(marker), marker)
		p.seqs[tok] = Sequence{Open: open, Close: closing}
		p.reset = closing
	}
	return p
}

// Enabled reports whether the palette emits escape sequences.
func (p Palette) Enabled() bool { return p.enabled }

// Sequence returns the bracket for s.
func (p Palette) Sequence(s Style) Sequence {
	if s < 0 || s >= numStyles {
		return Sequence{}
	}
	return p.seqs[s]
}

// Reset returns the sequence that clears all attributes, or "" when disabled.
func (p Palette) Reset() string { return p.reset }

func (p *Palette) appendStyled(dst []byte, s Style, unit []byte) []byte {
	seq := p.Sequence(s)
	dst = append(dst, seq.Open...)
	dst = append(dst, unit...)
	return append(dst, seq.Close...)
}
