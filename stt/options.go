package stt

import (
	sttv3 "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
)

// ProcessingMode selects how the recognizer schedules its work.
type ProcessingMode int

const (
	// RealTime recognizes audio as it arrives.
	RealTime ProcessingMode = iota
	// FullData lets the server wait for the complete audio before
	// recognizing, trading latency for accuracy.
	FullData
)

// Config holds the immutable parameters of a recognition session. It is
// constructed once per session and never mutated.
type Config struct {
	// Endpoint is the recognizer address. Defaults to DefaultEndpoint.
	Endpoint string
	// APIKey is attached to the call metadata as an Api-Key credential.
	APIKey string
	// SampleRate is the source sample rate in Hz.
	SampleRate int
	// Channels is the source channel count.
	Channels int
	// ChunkSize is the audio frame size in bytes. It shapes the outbound
	// stream only and is never part of the wire session options.
	ChunkSize int
	// Languages is the recognition language whitelist.
	Languages []string
	// Normalization enables server-side text normalization.
	Normalization bool
	// ProfanityFilter masks profanity in recognized text.
	ProfanityFilter bool
	Mode            ProcessingMode
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "api_key", Reason: "must not be empty"}
	}
	if c.SampleRate <= 0 {
		return &ConfigError{Field: "sample_rate", Reason: "must be positive"}
	}
	if c.Channels <= 0 {
		return &ConfigError{Field: "channels", Reason: "must be positive"}
	}
	if c.ChunkSize <= 0 {
		return &ConfigError{Field: "chunk_size", Reason: "must be positive"}
	}
	if len(c.Languages) == 0 {
		return &ConfigError{Field: "languages", Reason: "whitelist must not be empty"}
	}
	return nil
}

// SessionOptions maps the config onto the wire session options sent once at
// stream start. Pure: no I/O, no side effects; invalid input fails with a
// *ConfigError.
func SessionOptions(c Config) (*sttv3.StreamingOptions, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	normalization := sttv3.TextNormalizationOptions_TEXT_NORMALIZATION_DISABLED
	if c.Normalization {
		normalization = sttv3.TextNormalizationOptions_TEXT_NORMALIZATION_ENABLED
	}

	processing := sttv3.RecognitionModelOptions_REAL_TIME
	if c.Mode == FullData {
		processing = sttv3.RecognitionModelOptions_FULL_DATA
	}

	return &sttv3.StreamingOptions{
		RecognitionModel: &sttv3.RecognitionModelOptions{
			AudioFormat: &sttv3.AudioFormatOptions{
				AudioFormat: &sttv3.AudioFormatOptions_RawAudio{
					RawAudio: &sttv3.RawAudio{
						AudioEncoding:     sttv3.RawAudio_LINEAR16_PCM,
						SampleRateHertz:   int64(c.SampleRate),
						AudioChannelCount: int64(c.Channels),
					},
				},
			},
			TextNormalization: &sttv3.TextNormalizationOptions{
				TextNormalization: normalization,
				ProfanityFilter:   c.ProfanityFilter,
				LiteratureText:    false,
			},
			LanguageRestriction: &sttv3.LanguageRestrictionOptions{
				RestrictionType: sttv3.LanguageRestrictionOptions_WHITELIST,
				LanguageCode:    c.Languages,
			},
			AudioProcessingType: processing,
		},
	}, nil
}
