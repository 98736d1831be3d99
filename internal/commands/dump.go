package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vitaminmoo/hexview/internal/config"
	"github.com/vitaminmoo/hexview/internal/dump"
	"github.com/vitaminmoo/hexview/internal/format"
)

const outputBufferSize = 64 * 1024

// Request selects what to dump and how to render it.
type Request struct {
	Source  string // file name, or "-" for stdin
	Start   uint64
	Length  uint64 // 0 means no limit
	Options config.Options
}

// Dump streams the requested range to out, one rendered line per window.
func Dump(req Request, stdin io.Reader, out io.Writer) error {
	src, err := dump.Open(req.Source, stdin)
	if err != nil {
		return err
	}
	defer src.Close()

	w := bufio.NewWriterSize(out, outputBufferSize)
	f := format.New(req.Options)

	var line []byte
	stats, err := dump.Process(src, f.Options().BytesPerLine, req.Start, req.Length, func(win dump.Window) error {
		line = f.AppendLine(line[:0], win.Offset, win.Data)
		_, err := w.Write(line)
		return err
	})
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", req.Source, err)
	}

	logStats(req.Source, stats)
	return nil
}

// Render collects the rendered lines of the requested range in memory. It is
// used by the pager, which needs the whole text up front.
func Render(req Request, stdin io.Reader) ([]string, error) {
	src, err := dump.Open(req.Source, stdin)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	f := format.New(req.Options)

	var line []byte
	stats, err := dump.Process(src, f.Options().BytesPerLine, req.Start, req.Length, func(win dump.Window) error {
		line = f.AppendLine(line[:0], win.Offset, win.Data)
		buf.Write(line)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dump %s: %w", req.Source, err)
	}
	logStats(req.Source, stats)

	text := strings.TrimSuffix(buf.String(), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func logStats(name string, stats dump.Stats) {
	config.Debugf("%s: %d lines, %s rendered", name, stats.Windows, humanize.IBytes(stats.Bytes))
	if stats.Unskipped > 0 {
		config.Debugf("%s: %s short of the start offset", name, humanize.IBytes(stats.Unskipped))
	}
}
