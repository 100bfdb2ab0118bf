package stt

import "strings"

// Transcript accumulates committed segments in server receipt order. It is
// owned by a single session and never shared across sessions.
type Transcript struct {
	segments     []string
	partials     []string
	keepPartials bool
}

func NewTranscript(keepPartials bool) *Transcript {
	return &Transcript{keepPartials: keepPartials}
}

// AddSegment appends one committed segment. Segments are append-only and
// never reordered or deduplicated.
func (t *Transcript) AddSegment(text string) {
	t.segments = append(t.segments, text)
}

// AddPartial records a tentative hint. Dropped unless the transcript was
// created with keepPartials.
func (t *Transcript) AddPartial(text string) {
	if t.keepPartials {
		t.partials = append(t.partials, text)
	}
}

// Segments returns the committed segments in receipt order.
func (t *Transcript) Segments() []string {
	segments := make([]string, len(t.segments))
	copy(segments, t.segments)
	return segments
}

// Partials returns the retained intermediate texts, if any.
func (t *Transcript) Partials() []string {
	partials := make([]string, len(t.partials))
	copy(partials, t.partials)
	return partials
}

// FullText is the space-join of the segments in receipt order.
func (t *Transcript) FullText() string {
	return strings.Join(t.segments, " ")
}

func (t *Transcript) Len() int { return len(t.segments) }
