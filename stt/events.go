package stt

import (
	sttv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
)

// EventKind discriminates the recognition events the server sends.
type EventKind int

const (
	// Unknown covers sparse, malformed, or unrecognized events. They are
	// logged and otherwise ignored.
	Unknown EventKind = iota
	// Partial is a tentative transcription hint, superseded by the next
	// Final for the same audio region.
	Partial
	// Final is a committed transcript segment.
	Final
	// FinalRefinement is a normalized form of already committed text.
	// Informational only; it never augments the transcript.
	FinalRefinement
)

func (k EventKind) String() string {
	switch k {
	case Partial:
		return "partial"
	case Final:
		return "final"
	case FinalRefinement:
		return "final_refinement"
	default:
		return "unknown"
	}
}

// Event is one classified recognition event.
type Event struct {
	Kind EventKind
	// Text is the highest-ranked alternative for Partial and Final events,
	// or the normalized text for FinalRefinement events.
	Text string
	// Raw is the message as received, retained for diagnostic logging.
	Raw *sttv3.StreamingResponse
}

// Classify maps one inbound response onto an Event by the populated oneof
// field. It never fails: events with empty alternatives degrade to Unknown,
// since the server legitimately sends sparse intermediate messages.
func Classify(resp *sttv3.StreamingResponse) Event {
	switch ev := resp.GetEvent().(type) {
	case *sttv3.StreamingResponse_Partial:
		if alts := ev.Partial.GetAlternatives(); len(alts) > 0 {
			return Event{Kind: Partial, Text: alts[0].GetText(), Raw: resp}
		}
	case *sttv3.StreamingResponse_Final:
		if alts := ev.Final.GetAlternatives(); len(alts) > 0 {
			return Event{Kind: Final, Text: alts[0].GetText(), Raw: resp}
		}
	case *sttv3.StreamingResponse_FinalRefinement:
		if alts := ev.FinalRefinement.GetNormalizedText().GetAlternatives(); len(alts) > 0 {
			return Event{Kind: FinalRefinement, Text: alts[0].GetText(), Raw: resp}
		}
	}
	return Event{Kind: Unknown, Raw: resp}
}
