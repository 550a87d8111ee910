// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

// fakeStream yields the given responses in order and records how many were
// consumed, so tests can assert the stream is abandoned early.
func fakeStream(consumed *int, pairs ...struct {
	resp *genai.GenerateContentResponse
	err  error
}) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, p := range pairs {
			*consumed++
			if !yield(p.resp, p.err) {
				return
			}
		}
	}
}

func audioChunk(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
					},
				},
			},
		},
	}
}

func emptyChunk() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "metadata"}}}},
		},
	}
}

type pair = struct {
	resp *genai.GenerateContentResponse
	err  error
}

func TestFirstAudioClipStopsAtFirstData(t *testing.T) {
	var consumed int
	stream := fakeStream(&consumed,
		pair{resp: emptyChunk()},
		pair{resp: audioChunk([]byte{1, 2, 3}, "audio/L16;rate=24000")},
		pair{resp: audioChunk([]byte{9, 9, 9}, "audio/L16;rate=24000")},
	)

	clip, err := firstAudioClip(stream)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 2, 3}, clip.Data)
	assert.Equal(t, "audio/L16;rate=24000", clip.MIMEType)
	// The chunk after the first audio payload must never be pulled.
	assert.Equal(t, 2, consumed)
}

func TestFirstAudioClipSkipsDatalessChunks(t *testing.T) {
	var consumed int
	stream := fakeStream(&consumed,
		pair{resp: &genai.GenerateContentResponse{}},
		pair{resp: emptyChunk()},
		pair{resp: audioChunk([]byte{7}, "audio/wav")},
	)

	clip, err := firstAudioClip(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, clip.Data)
	assert.Equal(t, 3, consumed)
}

func TestFirstAudioClipNoAudio(t *testing.T) {
	var consumed int
	stream := fakeStream(&consumed, pair{resp: emptyChunk()})

	_, err := firstAudioClip(stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProvider)
	assert.Contains(t, err.Error(), "no audio data")
}

func TestFirstAudioClipStreamError(t *testing.T) {
	var consumed int
	stream := fakeStream(&consumed,
		pair{resp: emptyChunk()},
		pair{err: errors.New("connection reset")},
	)

	_, err := firstAudioClip(stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProvider)
}

func TestToneInstruction(t *testing.T) {
	assert.Contains(t, ToneInstruction(types.StyleSerious), "judge")
	assert.Contains(t, ToneInstruction(types.StyleFlippant), "hopeless")
	assert.Contains(t, ToneInstruction(types.StyleUpbeat), "upbeat")
	// Unknown styles fall back to the upbeat delivery.
	assert.Equal(t, ToneInstruction(types.StyleUpbeat), ToneInstruction(types.VoiceStyle("brooding")))
}
