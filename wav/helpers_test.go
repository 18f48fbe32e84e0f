package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func chunkIDs(chunks []testChunk) []string {
	ids := make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = ch.id
	}

	return ids
}

func findChunk(chunks []testChunk, id string) *testChunk {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i]
		}
	}

	return nil
}

// encodeTestFile runs fill against a fresh encoder, closes it and returns
// the path and content of the written file.
func encodeTestFile(t *testing.T, sampleRate, bitDepth, numChans int, fill func(*Encoder) error) (string, []byte) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := NewEncoder(f, sampleRate, bitDepth, numChans)
	if err := fill(enc); err != nil {
		t.Fatalf("fill encoder: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return path, data
}
