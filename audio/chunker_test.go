package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func drain(t *testing.T, c *Chunker) [][]byte {
	t.Helper()
	var frames [][]byte
	for {
		frame, err := c.Next()
		if errors.Is(err, io.EOF) {
			return frames
		}
		if err != nil {
			t.Fatalf("Next() returned unexpected error: %v", err)
		}
		frames = append(frames, frame)
	}
}

func TestNewChunkerRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewChunker(bytes.NewReader(nil), size); err == nil {
			t.Errorf("NewChunker(size=%d) expected error, got nil", size)
		}
	}
}

func TestChunkerFrameCounts(t *testing.T) {
	tests := []struct {
		name      string
		sourceLen int
		size      int
		want      []int
	}{
		{"empty source", 0, 4, nil},
		{"evenly divisible", 8, 4, []int{4, 4}},
		{"two and a half chunks", 10, 4, []int{4, 4, 2}},
		{"single short frame", 3, 4, []int{3}},
		{"exactly one chunk", 4, 4, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := bytes.Repeat([]byte{0xAB}, tt.sourceLen)
			chunker, err := NewChunker(bytes.NewReader(source), tt.size)
			if err != nil {
				t.Fatalf("NewChunker: %v", err)
			}

			frames := drain(t, chunker)
			if len(frames) != len(tt.want) {
				t.Fatalf("got %d frames, want %d", len(frames), len(tt.want))
			}
			for i, frame := range frames {
				if len(frame) != tt.want[i] {
					t.Errorf("frame %d has length %d, want %d", i, len(frame), tt.want[i])
				}
			}
		})
	}
}

func TestChunkerPreservesOrder(t *testing.T) {
	source := []byte("abcdefghij")
	chunker, err := NewChunker(bytes.NewReader(source), 3)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}

	frames := drain(t, chunker)
	var joined []byte
	for _, frame := range frames {
		joined = append(joined, frame...)
	}
	if !bytes.Equal(joined, source) {
		t.Errorf("reassembled frames = %q, want %q", joined, source)
	}
}

func TestChunkerEOFIsSticky(t *testing.T) {
	chunker, err := NewChunker(bytes.NewReader([]byte("ab")), 4)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	drain(t, chunker)

	if _, err := chunker.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after exhaustion = %v, want io.EOF", err)
	}
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestChunkerPropagatesReadFailure(t *testing.T) {
	readErr := errors.New("device unplugged")
	chunker, err := NewChunker(&failingReader{data: []byte("abcd"), err: readErr}, 4)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}

	if _, err := chunker.Next(); err != nil {
		t.Fatalf("first frame failed: %v", err)
	}

	_, err = chunker.Next()
	if !errors.Is(err, readErr) {
		t.Errorf("Next() = %v, want wrapped %v", err, readErr)
	}

	// The sequence is terminated after a failure.
	if _, err := chunker.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after failure = %v, want io.EOF", err)
	}
}
