// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package speech synthesizes a spoken rendition of a critique through the
// Gemini TTS streaming endpoint and handles audio container concerns.
package speech

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

// Clip is one synthesized audio payload with its declared content type.
type Clip struct {
	Data     []byte
	MIMEType string
}

// Synthesizer converts text to audio. Implementations return the raw bytes
// as delivered by the provider; container wrapping is the caller's job.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, style types.VoiceStyle) (Clip, error)
}

// toneInstructions prefix the critique text to steer delivery.
var toneInstructions = map[types.VoiceStyle]string{
	types.StyleSerious:  "Read this text in a stern and authoritative voice. Emulate the cadence and tone of voice of a judge delivering a verdict.",
	types.StyleFlippant: "Read this text with a sense of sadness and defeatism as if you are delivering hopeless news to somebody.",
	types.StyleUpbeat:   "Read this text in a highly encouraging and upbeat tone of voice - the kind that you might hear in a cheesy radio informercial",
}

// ToneInstruction returns the delivery instruction for a style. Unknown
// styles map to upbeat.
func ToneInstruction(style types.VoiceStyle) string {
	if inst, ok := toneInstructions[style]; ok {
		return inst
	}
	return toneInstructions[types.StyleUpbeat]
}

// GeminiSynthesizer implements Synthesizer against the Gemini TTS
// streaming API.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer wraps an existing Gemini client for the given TTS
// model and prebuilt voice.
func NewGeminiSynthesizer(client *genai.Client, model, voice string) *GeminiSynthesizer {
	return &GeminiSynthesizer{client: client, model: model, voice: voice}
}

// Synthesize streams audio for the text and returns the first chunk that
// carries inline audio data. The provider delivers the whole payload in a
// single chunk; the rest of the stream is abandoned once it arrives.
func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text string, style types.VoiceStyle) (Clip, error) {
	prompt := fmt.Sprintf("%s\n\n%s", ToneInstruction(style), text)

	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(float32(1)),
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: s.voice,
				},
			},
		},
	}

	stream := s.client.Models.GenerateContentStream(ctx, s.model, genai.Text(prompt), config)
	return firstAudioClip(stream)
}

// firstAudioClip consumes a generate-content stream until the first part
// carrying inline audio data and stops reading there.
func firstAudioClip(stream iter.Seq2[*genai.GenerateContentResponse, error]) (Clip, error) {
	for resp, err := range stream {
		if err != nil {
			return Clip{}, fmt.Errorf("%w: TTS stream: %v", types.ErrProvider, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		parts := resp.Candidates[0].Content.Parts
		if len(parts) == 0 {
			continue
		}
		blob := parts[0].InlineData
		if blob == nil || len(blob.Data) == 0 {
			continue
		}
		return Clip{Data: blob.Data, MIMEType: blob.MIMEType}, nil
	}
	return Clip{}, fmt.Errorf("%w: no audio data received from TTS", types.ErrProvider)
}
