package config

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBlockSize(t *testing.T) {
	tests := []struct {
		bpl  int
		want int
	}{
		{1, MinReadBlockSize},
		{16, MinReadBlockSize},
		{17, 17 * 256},
		{100, 100 * 256},
		{4096, MaxReadBlockSize},
		{1 << 20, MaxReadBlockSize},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadBlockSize(tt.bpl), "bpl=%d", tt.bpl)
	}
}

func TestSize_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"0", 0},
		{"123", 123},
		{"0x10", 16},
		{"0XfF", 255},
		{"4KiB", 4096},
		{"1MB", 1000000},
		{"1MiB", 1 << 20},
	}
	for _, tt := range tests {
		var s Size
		require.NoError(t, s.UnmarshalText([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, s, tt.in)
	}

	for _, in := range []string{"", "abc", "0xzz", "-5"} {
		var s Size
		assert.ErrorIs(t, s.UnmarshalText([]byte(in)), ErrInvalid, in)
	}
}

func TestOptions_Validate(t *testing.T) {
	o := Default()
	require.NoError(t, o.Validate())
	assert.True(t, o.DotForNonPrintable)
	assert.True(t, o.ShowHex())
	assert.True(t, o.ShowASCII())

	o = Default()
	o.ShowEscapes = true
	require.NoError(t, o.Validate())
	assert.False(t, o.DotForNonPrintable)

	for name, mutate := range map[string]func(*Options){
		"ascii and hex only": func(o *Options) { o.ASCIIOnly, o.HexOnly = true, true },
		"zero bytes per line": func(o *Options) { o.BytesPerLine = 0 },
		"negative group":      func(o *Options) { o.Group = -1 },
		"zero offset width":   func(o *Options) { o.OffsetWidth = 0 },
	} {
		o := Default()
		mutate(&o)
		assert.ErrorIs(t, o.Validate(), ErrInvalid, name)
	}
}

func TestParseOffsetBase(t *testing.T) {
	b, err := ParseOffsetBase("dec")
	require.NoError(t, err)
	assert.Equal(t, OffsetDec, b)

	b, err = ParseOffsetBase("hex")
	require.NoError(t, err)
	assert.Equal(t, OffsetHex, b)

	_, err = ParseOffsetBase("oct")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer SetLogOutput(os.Stderr)
	defer SetVerbose(false)

	SetVerbose(false)
	Debugf("hidden %d", 1)
	Warnf("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	SetVerbose(true)
	assert.True(t, Verbose)
	Debugf("visible %d", 3)
	assert.Contains(t, buf.String(), "visible 3")
}
