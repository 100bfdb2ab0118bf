package stt

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ConfigError reports invalid session parameters, detected before any
// network activity.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid session config: %s: %s", e.Field, e.Reason)
}

// ReadError reports an audio source that became unreadable mid-session.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("audio source unreadable: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// StreamError reports a transport, authentication, or protocol failure that
// aborted the recognition call. Code and Message carry the underlying gRPC
// status verbatim.
type StreamError struct {
	Code    codes.Code
	Message string
	Err     error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("recognition stream failed: code=%s message=%q", e.Code, e.Message)
}

func (e *StreamError) Unwrap() error { return e.Err }

func streamError(err error) *StreamError {
	st, _ := status.FromError(err)
	return &StreamError{Code: st.Code(), Message: st.Message(), Err: err}
}
