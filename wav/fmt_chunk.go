package wav

import (
	"errors"
	"fmt"

	"github.com/go-audio/riff"
)

var errNilChunkOrParser = errors.New("nil chunk/parser pointer")

// FmtChunk stores the parsed WAV fmt chunk.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraData      []byte
}

func (f *FmtChunk) Clone() *FmtChunk {
	if f == nil {
		return nil
	}

	out := *f
	out.ExtraData = append([]byte(nil), f.ExtraData...)

	return &out
}

func newPCMFmtChunk(sampleRate, bitDepth, numChans int) *FmtChunk {
	blockAlign := numChans * bytesPerSample(bitDepth)

	return &FmtChunk{
		FormatTag:      wavFormatPCM,
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(sampleRate * blockAlign),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(bitDepth),
	}
}

func decodeFmtChunk(chunk *riff.Chunk, parser *riff.Parser) (*FmtChunk, error) {
	if chunk == nil || parser == nil {
		return nil, errNilChunkOrParser
	}

	fmtChunk := &FmtChunk{}

	fields := []struct {
		name string
		dst  any
	}{
		{"wav format", &fmtChunk.FormatTag},
		{"channels", &fmtChunk.NumChannels},
		{"sample rate", &fmtChunk.SampleRate},
		{"avg bytes/sec", &fmtChunk.AvgBytesPerSec},
		{"block align", &fmtChunk.BlockAlign},
		{"bit depth", &fmtChunk.BitsPerSample},
	}

	for _, field := range fields {
		if err := chunk.ReadLE(field.dst); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", field.name, err)
		}
	}

	parser.NumChannels = fmtChunk.NumChannels
	parser.SampleRate = fmtChunk.SampleRate
	parser.AvgBytesPerSec = fmtChunk.AvgBytesPerSec
	parser.BlockAlign = fmtChunk.BlockAlign
	parser.BitsPerSample = fmtChunk.BitsPerSample
	parser.WavAudioFormat = fmtChunk.FormatTag

	if chunk.Size > 16 {
		var extraSize uint16

		if err := chunk.ReadLE(&extraSize); err != nil {
			return nil, fmt.Errorf("failed to read fmt extension size: %w", err)
		}

		fmtChunk.ExtraData = make([]byte, extraSize)
		if extraSize > 0 {
			if err := chunk.ReadLE(fmtChunk.ExtraData); err != nil {
				return nil, fmt.Errorf("failed to read fmt extension data: %w", err)
			}
		}
	}

	chunk.Drain()

	return fmtChunk, nil
}
