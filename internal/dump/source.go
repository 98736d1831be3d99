package dump

import (
	"fmt"
	"io"
	"os"
)

// StdinName selects standard input as the source.
const StdinName = "-"

// Source is the byte stream being dumped. It is seekable only when the
// underlying reader supports random access (a regular file).
type Source struct {
	Name string

	r      io.Reader
	seeker io.Seeker
	closer io.Closer
}

// Open opens name for reading, or wraps stdin when name is "-". Standard
// input is never treated as seekable. The caller must Close the source.
func Open(name string, stdin io.Reader) (*Source, error) {
	if name == StdinName {
		return &Source{Name: name, r: stdin}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file '%s': %w", name, err)
	}

	s := &Source{Name: name, r: f, closer: f}
	// Named pipes and character devices are opened like files but cannot seek.
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		s.seeker = f
	}
	return s, nil
}

// NewSource wraps an arbitrary reader. It is seekable if r implements
// io.Seeker.
func NewSource(name string, r io.Reader) *Source {
	s := &Source{Name: name, r: r}
	if sk, ok := r.(io.Seeker); ok {
		s.seeker = sk
	}
	return s
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Seekable reports whether skipping can seek instead of reading.
func (s *Source) Seekable() bool {
	return s.seeker != nil
}

// Close releases the underlying file, if any. It is safe to call more than once.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
