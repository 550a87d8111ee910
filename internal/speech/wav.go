// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"bytes"
	"encoding/binary"
	"mime"
	"strconv"
	"strings"
)

// Default sample parameters when the content-type descriptor omits them or
// carries unparseable values.
const (
	defaultSampleRate    = 24000
	defaultBitsPerSample = 16
)

// Format describes the raw PCM layout declared by the speech provider.
// Audio is always mono signed-integer PCM.
type Format struct {
	// SampleRate in Hz.
	SampleRate int

	// BitsPerSample, from the L<N> subtype token (e.g. audio/L16).
	BitsPerSample int
}

// ParseFormat extracts the sample rate and bit depth from a content-type
// descriptor of the form "type/subtype;param=value;param=value", e.g.
// "audio/L16;rate=24000". Missing or malformed parameters fall back to the
// defaults (16-bit, 24000 Hz) rather than failing; a mismatch against the
// actual payload plays back at the wrong pitch but produces no error.
func ParseFormat(mimeType string) Format {
	f := Format{
		SampleRate:    defaultSampleRate,
		BitsPerSample: defaultBitsPerSample,
	}

	for _, part := range strings.Split(mimeType, ";") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(strings.ToLower(part), "rate="):
			if rate, err := strconv.Atoi(part[len("rate="):]); err == nil {
				f.SampleRate = rate
			}
		case strings.HasPrefix(part, "audio/L"):
			if bits, err := strconv.Atoi(part[len("audio/L"):]); err == nil {
				f.BitsPerSample = bits
			}
		}
	}

	return f
}

// EncodeWAV wraps raw mono PCM bytes in a standards-conformant RIFF/WAVE
// container. The payload is appended verbatim; all sizes in the 44-byte
// header are derived from len(pcm) and the format, so the output is
// deterministic for a fixed input.
func EncodeWAV(pcm []byte, f Format) []byte {
	const numChannels = 1

	dataSize := uint32(len(pcm))
	bytesPerSample := uint32(f.BitsPerSample / 8)
	blockAlign := uint16(numChannels * bytesPerSample)
	byteRate := uint32(f.SampleRate) * numChannels * bytesPerSample

	buf := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))            // fmt chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))             // PCM, uncompressed
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))   // mono
	binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate))  // sample rate
	binary.Write(buf, binary.LittleEndian, byteRate)              // byte rate
	binary.Write(buf, binary.LittleEndian, blockAlign)            // block align
	binary.Write(buf, binary.LittleEndian, uint16(f.BitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(pcm)

	return buf.Bytes()
}

// knownExtensions maps container content types the provider may declare to
// file extensions, independently of the host's mime.types database.
var knownExtensions = map[string]string{
	"audio/wav":  ".wav",
	"audio/wave": ".wav",
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
	"audio/ogg":  ".ogg",
	"audio/aac":  ".aac",
	"audio/flac": ".flac",
	"audio/webm": ".webm",
}

// FileExtension resolves the declared content type to a file extension.
// ok is false when no mapping exists; the caller takes that as "raw PCM,
// wrap it in a WAV container". This is a heuristic, not a content sniff:
// an unrecognized type whose payload is already a complete container would
// be double-wrapped.
func FileExtension(mimeType string) (ext string, ok bool) {
	base := strings.TrimSpace(strings.ToLower(strings.Split(mimeType, ";")[0]))
	if ext, ok := knownExtensions[base]; ok {
		return ext, true
	}
	if exts, err := mime.ExtensionsByType(base); err == nil && len(exts) > 0 {
		return exts[0], true
	}
	return "", false
}
