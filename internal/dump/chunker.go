// Package dump drives the read loop that splits a byte stream into
// fixed-size line windows.
package dump

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vitaminmoo/hexview/internal/config"
)

// Window is one output line's worth of bytes and the stream offset of its
// first byte. Data is only valid during the sink call that receives it.
type Window struct {
	Offset uint64
	Data   []byte
}

// Stats summarizes a finished run.
type Stats struct {
	Windows   int
	Bytes     uint64
	Unskipped uint64 // bytes of the start offset that the source did not have
}

// Sink receives each completed window.
type Sink func(Window) error

type state int

const (
	stateReading state = iota
	stateFlushing
	stateDone
)

// Process reads src to the end (or until limit bytes have been consumed,
// when limit is nonzero), skipping the first start bytes, and hands every
// lineSize bytes to emit. The last window may be shorter than lineSize; no
// other window is.
//
// A read error ends the stream like EOF does. Errors from emit abort the run
// and are returned.
func Process(src *Source, lineSize int, start, limit uint64, emit Sink) (Stats, error) {
	var stats Stats
	if lineSize <= 0 {
		return stats, fmt.Errorf("line size must be positive, got %d", lineSize)
	}

	if start > 0 {
		short, err := skip(src, start)
		if err != nil {
			return stats, err
		}
		if short > 0 {
			stats.Unskipped = short
			config.Warnf("could not skip to start offset %d; input too short", start)
		}
	}

	block := make([]byte, config.ReadBlockSize(lineSize))
	line := make([]byte, 0, lineSize)
	pos := start
	remaining := limit

	flush := func() error {
		w := Window{Offset: pos - uint64(len(line)), Data: line}
		if err := emit(w); err != nil {
			return err
		}
		stats.Windows++
		stats.Bytes += uint64(len(line))
		line = line[:0]
		return nil
	}

	for st := stateReading; st != stateDone; {
		switch st {
		case stateReading:
			want := len(block)
			if limit != 0 && remaining < uint64(want) {
				want = int(remaining)
			}

			n, err := src.Read(block[:want])
			if err != nil && !errors.Is(err, io.EOF) {
				config.Debugf("read %s: %v", src.Name, err)
			}
			if n == 0 {
				st = stateFlushing
				continue
			}

			for chunk := block[:n]; len(chunk) > 0; {
				take := min(lineSize-len(line), len(chunk))
				line = append(line, chunk[:take]...)
				chunk = chunk[take:]
				pos += uint64(take)
				if len(line) == lineSize {
					if err := flush(); err != nil {
						return stats, err
					}
				}
			}

			// Reads never ask for more than remaining, so the limit lands
			// exactly on a read boundary.
			if limit != 0 {
				remaining -= uint64(n)
				if remaining == 0 {
					st = stateFlushing
				}
			}
			if err != nil {
				st = stateFlushing
			}

		case stateFlushing:
			if len(line) > 0 {
				if err := flush(); err != nil {
					return stats, err
				}
			}
			st = stateDone
		}
	}

	return stats, nil
}

// skip advances src by n bytes and returns how many could not be skipped
// because the source ended first.
func skip(src *Source, n uint64) (uint64, error) {
	if src.Seekable() {
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("start offset %d is out of range", n)
		}
		if _, err := src.seeker.Seek(int64(n), io.SeekStart); err != nil {
			return 0, fmt.Errorf("seeking to start offset %d failed: %w", n, err)
		}
		return 0, nil
	}

	buf := make([]byte, config.SkipChunkSize)
	for n > 0 {
		got, err := src.Read(buf[:min(uint64(len(buf)), n)])
		n -= uint64(got)
		if got == 0 || err != nil {
			break
		}
	}
	return n, nil
}
