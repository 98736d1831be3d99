package dump

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitaminmoo/hexview/internal/config"
)

func TestMain(m *testing.M) {
	config.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// pipe hides the Seek method of the wrapped reader.
type pipe struct{ io.Reader }

type brokenSeeker struct{ io.Reader }

func (brokenSeeker) Seek(int64, int) (int64, error) {
	return 0, errors.New("illegal seek")
}

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func collect(t *testing.T, src *Source, lineSize int, start, limit uint64) ([]Window, Stats) {
	t.Helper()
	var windows []Window
	stats, err := Process(src, lineSize, start, limit, func(w Window) error {
		windows = append(windows, Window{Offset: w.Offset, Data: append([]byte(nil), w.Data...)})
		return nil
	})
	require.NoError(t, err)
	return windows, stats
}

func TestProcess_WindowShapes(t *testing.T) {
	for size := 0; size <= 70; size++ {
		for bpl := 1; bpl <= 17; bpl++ {
			data := sequence(size)
			windows, stats := collect(t, NewSource("mem", pipe{bytes.NewReader(data)}), bpl, 0, 0)

			var total int
			for k, w := range windows {
				assert.Equal(t, uint64(k*bpl), w.Offset, "size=%d bpl=%d k=%d", size, bpl, k)
				if k < len(windows)-1 {
					assert.Len(t, w.Data, bpl)
				} else {
					assert.NotEmpty(t, w.Data)
					assert.LessOrEqual(t, len(w.Data), bpl)
				}
				assert.Equal(t, data[total:total+len(w.Data)], w.Data)
				total += len(w.Data)
			}
			assert.Equal(t, size, total)
			assert.Equal(t, uint64(size), stats.Bytes)
			assert.Equal(t, len(windows), stats.Windows)
			assert.Equal(t, (size+bpl-1)/bpl, len(windows))
		}
	}
}

func TestProcess_LengthLimitStopsEarly(t *testing.T) {
	src := NewSource("mem", pipe{bytes.NewReader([]byte{0x41, 0x42, 0x43})})
	windows, stats := collect(t, src, 16, 0, 2)

	require.Len(t, windows, 1)
	assert.Equal(t, []byte{0x41, 0x42}, windows[0].Data)
	assert.Equal(t, uint64(0), windows[0].Offset)
	assert.Equal(t, uint64(2), stats.Bytes)

	rest, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x43}, rest, "the limit must not over-read the source")
}

func TestProcess_LengthLimitMidLine(t *testing.T) {
	windows, stats := collect(t, NewSource("mem", bytes.NewReader(sequence(100))), 16, 0, 40)

	require.Len(t, windows, 3)
	assert.Len(t, windows[0].Data, 16)
	assert.Len(t, windows[1].Data, 16)
	assert.Len(t, windows[2].Data, 8)
	assert.Equal(t, uint64(32), windows[2].Offset)
	assert.Equal(t, uint64(40), stats.Bytes)
}

func TestProcess_LengthLimitExactness(t *testing.T) {
	data := sequence(50)
	for _, start := range []uint64{0, 7, 50, 60} {
		for _, limit := range []uint64{1, 13, 43, 44, 100} {
			_, stats := collect(t, NewSource("mem", pipe{bytes.NewReader(data)}), 5, start, limit)
			available := uint64(0)
			if start < uint64(len(data)) {
				available = uint64(len(data)) - start
			}
			assert.Equal(t, min(limit, available), stats.Bytes, "start=%d limit=%d", start, limit)
		}
	}
}

func TestProcess_SkipBySeeking(t *testing.T) {
	data := sequence(40)
	windows, stats := collect(t, NewSource("mem", bytes.NewReader(data)), 16, 20, 0)

	require.Len(t, windows, 2)
	assert.Equal(t, uint64(20), windows[0].Offset)
	assert.Equal(t, data[20:36], windows[0].Data)
	assert.Equal(t, uint64(36), windows[1].Offset)
	assert.Equal(t, data[36:], windows[1].Data)
	assert.Zero(t, stats.Unskipped)
}

func TestProcess_SkipByReading(t *testing.T) {
	data := sequence(10000)
	windows, stats := collect(t, NewSource("pipe", pipe{bytes.NewReader(data)}), 16, 9000, 0)

	require.NotEmpty(t, windows)
	assert.Equal(t, uint64(9000), windows[0].Offset)
	assert.Equal(t, data[9000:9016], windows[0].Data)
	assert.Equal(t, uint64(1000), stats.Bytes)
	assert.Zero(t, stats.Unskipped)
}

func TestProcess_SkipUnderrunWarns(t *testing.T) {
	var logs bytes.Buffer
	config.SetLogOutput(&logs)
	t.Cleanup(func() { config.SetLogOutput(io.Discard) })

	windows, stats := collect(t, NewSource("pipe", pipe{bytes.NewReader(sequence(10))}), 16, 25, 0)

	assert.Empty(t, windows)
	assert.Equal(t, uint64(15), stats.Unskipped)
	assert.Contains(t, logs.String(), "could not skip to start offset")
}

func TestProcess_SeekFailureIsFatal(t *testing.T) {
	src := NewSource("broken", brokenSeeker{bytes.NewReader(sequence(10))})
	called := false
	_, err := Process(src, 16, 4, 0, func(Window) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeking to start offset 4 failed")
	assert.False(t, called)
}

func TestProcess_ReadErrorEndsStream(t *testing.T) {
	data := sequence(20)
	r := io.MultiReader(bytes.NewReader(data), iotest.ErrReader(errors.New("device gone")))
	windows, stats := collect(t, NewSource("flaky", r), 16, 0, 0)

	require.Len(t, windows, 2)
	assert.Equal(t, data[16:], windows[1].Data)
	assert.Equal(t, uint64(20), stats.Bytes)
}

func TestProcess_DataWithErrorIsKept(t *testing.T) {
	windows, _ := collect(t, NewSource("eof", iotest.DataErrReader(bytes.NewReader(sequence(5)))), 4, 0, 0)

	require.Len(t, windows, 2)
	assert.Equal(t, []byte{4}, windows[1].Data)
}

func TestProcess_SmallReads(t *testing.T) {
	data := sequence(37)
	want, _ := collect(t, NewSource("mem", pipe{bytes.NewReader(data)}), 8, 3, 30)
	got, _ := collect(t, NewSource("slow", iotest.OneByteReader(bytes.NewReader(data))), 8, 3, 30)
	assert.Equal(t, want, got)
}

func TestProcess_LinesWiderThanReadBlock(t *testing.T) {
	bpl := config.MaxReadBlockSize + 100
	windows, _ := collect(t, NewSource("mem", pipe{bytes.NewReader(sequence(bpl + 1))}), bpl, 0, 0)

	require.Len(t, windows, 2)
	assert.Len(t, windows[0].Data, bpl)
	assert.Equal(t, uint64(bpl), windows[1].Offset)
}

func TestProcess_SinkErrorAborts(t *testing.T) {
	errSink := errors.New("broken pipe")
	calls := 0
	stats, err := Process(NewSource("mem", bytes.NewReader(sequence(64))), 16, 0, 0, func(Window) error {
		calls++
		return errSink
	})

	assert.ErrorIs(t, err, errSink)
	assert.Equal(t, 1, calls)
	assert.Zero(t, stats.Windows)
}

func TestProcess_InvalidLineSize(t *testing.T) {
	_, err := Process(NewSource("mem", bytes.NewReader(nil)), 0, 0, 0, func(Window) error { return nil })
	assert.Error(t, err)
}
