package stt

import (
	sttv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
)

// frameSource yields audio frames in source order and io.EOF at the end.
// audio.Chunker satisfies it.
type frameSource interface {
	Next() ([]byte, error)
}

// requestSource produces the outbound message sequence of the duplex call:
// exactly one session-options message, then one chunk message per audio
// frame. Production is incremental, so at most one frame is in memory
// regardless of audio size.
type requestSource struct {
	options *sttv3.StreamingOptions
	frames  frameSource
	started bool
}

func newRequestSource(options *sttv3.StreamingOptions, frames frameSource) *requestSource {
	return &requestSource{options: options, frames: frames}
}

// Next returns the next outbound request. The session-options message comes
// strictly before any audio frame; io.EOF follows the last frame. Errors
// from the frame source pass through untouched.
func (r *requestSource) Next() (*sttv3.StreamingRequest, error) {
	if !r.started {
		r.started = true
		return &sttv3.StreamingRequest{
			Event: &sttv3.StreamingRequest_SessionOptions{
				SessionOptions: r.options,
			},
		}, nil
	}

	frame, err := r.frames.Next()
	if err != nil {
		return nil, err
	}
	return &sttv3.StreamingRequest{
		Event: &sttv3.StreamingRequest_Chunk{
			Chunk: &sttv3.AudioChunk{Data: frame},
		},
	}, nil
}
