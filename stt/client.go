package stt

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	sttv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	"github.com/Samandrakov/cloudapi/audio"
)

// DefaultEndpoint is the public SpeechKit v3 recognizer address.
const DefaultEndpoint = "stt.api.cloud.yandex.net:443"

// Client runs streaming recognition sessions against the SpeechKit v3
// recognizer. One session is in flight per Transcribe call.
type Client struct {
	config Config
	logger *log.Logger
}

// NewClient validates the configuration up front so that a session with bad
// parameters fails before any network activity.
func NewClient(config Config, logger *log.Logger) (*Client, error) {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{config: config, logger: logger}, nil
}

// recognizeStream is the duplex call surface a session drives. The generated
// Recognizer_RecognizeStreamingClient satisfies it.
type recognizeStream interface {
	Send(*sttv3.StreamingRequest) error
	Recv() (*sttv3.StreamingResponse, error)
	CloseSend() error
}

// Transcribe uploads source as a sequence of audio frames while concurrently
// consuming recognition events, and returns the committed transcript as
// (full text, segments in receipt order). keepPartials retains intermediate
// partial texts on the session transcript; they are logged either way.
//
// Any transport or read failure aborts both stream directions and discards
// the partial transcript: the call fails as a whole.
func (c *Client) Transcribe(ctx context.Context, source io.Reader, keepPartials bool) (string, []string, error) {
	options, err := SessionOptions(c.config)
	if err != nil {
		return "", nil, err
	}
	chunker, err := audio.NewChunker(source, c.config.ChunkSize)
	if err != nil {
		return "", nil, &ConfigError{Field: "chunk_size", Reason: err.Error()}
	}

	conn, err := grpc.NewClient(
		c.config.Endpoint,
		grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})),
	)
	if err != nil {
		return "", nil, fmt.Errorf("connect to %s: %w", c.config.Endpoint, err)
	}
	defer conn.Close()

	// The call context is derived from the group context so that the first
	// failing half tears down both stream directions.
	g, gctx := errgroup.WithContext(ctx)
	callCtx := metadata.AppendToOutgoingContext(
		gctx,
		"authorization", "Api-Key "+c.config.APIKey,
	)

	stream, err := sttv3.NewRecognizerClient(conn).RecognizeStreaming(callCtx)
	if err != nil {
		return "", nil, streamError(err)
	}

	s := &session{
		stream:     stream,
		requests:   newRequestSource(options, chunker),
		transcript: NewTranscript(keepPartials),
		logger:     c.logger,
	}
	g.Go(s.sendLoop)
	g.Go(s.recvLoop)
	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	c.logger.Info("transcription complete",
		"segments", s.transcript.Len(),
		"characters", len(s.transcript.FullText()),
	)
	return s.transcript.FullText(), s.transcript.Segments(), nil
}

// session is one duplex recognition call: the send half streams the session
// options and audio frames, the receive half folds recognition events into
// the transcript. Only the receive half touches the transcript.
type session struct {
	stream     recognizeStream
	requests   *requestSource
	transcript *Transcript
	logger     *log.Logger
}

func (s *session) sendLoop() error {
	for {
		req, err := s.requests.Next()
		if errors.Is(err, io.EOF) {
			// Outbound exhausted. The server may still be finalizing, so
			// half-close and let the receive side drain.
			s.logger.Debug("audio sent, awaiting remaining events")
			return s.stream.CloseSend()
		}
		if err != nil {
			return &ReadError{Err: err}
		}
		if err := s.stream.Send(req); err != nil {
			if errors.Is(err, io.EOF) {
				// Stream already broken; Recv reports the real error.
				return nil
			}
			return streamError(err)
		}
	}
}

func (s *session) recvLoop() error {
	for {
		resp, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return streamError(err)
		}
		s.handle(Classify(resp))
	}
}

func (s *session) handle(ev Event) {
	switch ev.Kind {
	case Partial:
		s.transcript.AddPartial(ev.Text)
		s.logger.Debug("partial", "text", ev.Text)
	case Final:
		s.transcript.AddSegment(ev.Text)
		s.logger.Info("segment", "n", s.transcript.Len(), "text", ev.Text)
	case FinalRefinement:
		s.logger.Debug("refined", "text", ev.Text)
	default:
		s.logger.Warn("unclassified recognition event", "event", ev.Raw.GetEvent())
	}
}
