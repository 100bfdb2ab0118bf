package audio

import (
	"errors"
	"fmt"
	"io"
)

// Chunker reads a finite audio source as a lazy sequence of fixed-size
// frames. The sequence is consumed exactly once; restarting it means
// reopening the source.
type Chunker struct {
	source io.Reader
	size   int
	done   bool
}

// NewChunker wraps source so that Next yields frames of at most size bytes.
func NewChunker(source io.Reader, size int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	return &Chunker{source: source, size: size}, nil
}

// Next returns the next frame in source order. Every frame is exactly the
// chunk size except possibly the last, and no frame is ever empty. io.EOF
// signals end-of-sequence; any other error means the source became
// unreadable mid-stream and terminates the sequence. Each frame is a fresh
// buffer, so callers may hand it off without copying.
func (c *Chunker) Next() ([]byte, error) {
	if c.done {
		return nil, io.EOF
	}

	frame := make([]byte, c.size)
	n, err := io.ReadFull(c.source, frame)
	switch {
	case err == nil:
		return frame, nil
	case errors.Is(err, io.EOF):
		c.done = true
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		c.done = true
		return frame[:n], nil
	default:
		c.done = true
		return nil, fmt.Errorf("read audio source: %w", err)
	}
}
