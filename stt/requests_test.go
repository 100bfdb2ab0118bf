package stt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	sttv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"

	"github.com/Samandrakov/cloudapi/audio"
)

func testConfig() Config {
	return Config{
		APIKey:          "test-key",
		SampleRate:      8000,
		Channels:        1,
		ChunkSize:       4,
		Languages:       []string{"ru-RU"},
		Normalization:   true,
		ProfanityFilter: true,
	}
}

func newTestRequestSource(t *testing.T, source []byte, chunkSize int) *requestSource {
	t.Helper()
	options, err := SessionOptions(testConfig())
	if err != nil {
		t.Fatalf("SessionOptions: %v", err)
	}
	chunker, err := audio.NewChunker(bytes.NewReader(source), chunkSize)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	return newRequestSource(options, chunker)
}

func drainRequests(t *testing.T, r *requestSource) []*sttv3.StreamingRequest {
	t.Helper()
	var requests []*sttv3.StreamingRequest
	for {
		req, err := r.Next()
		if errors.Is(err, io.EOF) {
			return requests
		}
		if err != nil {
			t.Fatalf("Next() returned unexpected error: %v", err)
		}
		requests = append(requests, req)
	}
}

func TestRequestSourceConfigComesFirst(t *testing.T) {
	for _, sourceLen := range []int{0, 10} {
		reqs := drainRequests(t, newTestRequestSource(t, bytes.Repeat([]byte{1}, sourceLen), 4))
		if len(reqs) == 0 {
			t.Fatal("request source produced no messages")
		}
		if reqs[0].GetSessionOptions() == nil {
			t.Errorf("sourceLen=%d: first message is not session options", sourceLen)
		}
		for i, req := range reqs[1:] {
			if req.GetChunk() == nil {
				t.Errorf("sourceLen=%d: message %d is not an audio chunk", sourceLen, i+1)
			}
		}
	}
}

func TestRequestSourceEmptySource(t *testing.T) {
	reqs := drainRequests(t, newTestRequestSource(t, nil, 4))
	if len(reqs) != 1 {
		t.Fatalf("empty source produced %d messages, want exactly 1", len(reqs))
	}
}

func TestRequestSourceChunkSizes(t *testing.T) {
	// 10 bytes at chunk size 4: exactly 3 chunks, the last half-sized.
	reqs := drainRequests(t, newTestRequestSource(t, bytes.Repeat([]byte{7}, 10), 4))
	if len(reqs) != 4 {
		t.Fatalf("got %d messages, want 4 (options + 3 chunks)", len(reqs))
	}
	wantSizes := []int{4, 4, 2}
	for i, want := range wantSizes {
		data := reqs[i+1].GetChunk().GetData()
		if len(data) != want {
			t.Errorf("chunk %d has %d bytes, want %d", i, len(data), want)
		}
	}
}

type erroringFrames struct {
	frames [][]byte
	err    error
}

func (s *erroringFrames) Next() ([]byte, error) {
	if len(s.frames) == 0 {
		return nil, s.err
	}
	frame := s.frames[0]
	s.frames = s.frames[1:]
	return frame, nil
}

func TestRequestSourcePropagatesFrameErrors(t *testing.T) {
	options, err := SessionOptions(testConfig())
	if err != nil {
		t.Fatalf("SessionOptions: %v", err)
	}
	readErr := errors.New("disk detached")
	r := newRequestSource(options, &erroringFrames{frames: [][]byte{{1, 2}}, err: readErr})

	for i := 0; i < 2; i++ {
		if _, err := r.Next(); err != nil {
			t.Fatalf("message %d failed early: %v", i, err)
		}
	}
	if _, err := r.Next(); !errors.Is(err, readErr) {
		t.Errorf("Next() = %v, want %v", err, readErr)
	}
}
