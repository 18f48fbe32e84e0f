package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var errChunkEncodeNotSupported = errors.New("chunk encode not supported")

// ChunkHandler is a typed handler for RIFF/WAV chunks.
// Encode is optional and may return errChunkEncodeNotSupported.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte, listType [4]byte) bool
	Decode(d *Decoder, ch *riff.Chunk) error
	Encode(e *Encoder) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&infoChunkHandler{},
			&clmChunkHandler{},
		},
	}
}

// Register appends a handler to the registry.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to the first matching handler.
func (r *ChunkRegistry) Decode(dec *Decoder, chnk *riff.Chunk) (bool, error) {
	if r == nil || chnk == nil {
		return false, nil
	}

	listType, err := sniffListType(chnk)
	if err != nil {
		return false, err
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(chnk.ID, listType) {
			err := handler.Decode(dec, chnk)
			if err != nil {
				return true, fmt.Errorf("chunk handler decode failed: %w", err)
			}

			return true, nil
		}
	}

	return false, nil
}

// Encode lets every handler write its chunk. Handlers that only decode are
// skipped.
func (r *ChunkRegistry) Encode(enc *Encoder) error {
	if r == nil {
		return nil
	}

	for _, handler := range r.handlers {
		err := handler.Encode(enc)
		if err == nil || errors.Is(err, errChunkEncodeNotSupported) {
			continue
		}

		return fmt.Errorf("failed to encode chunk with %T: %w", handler, err)
	}

	return nil
}

func sniffListType(chnk *riff.Chunk) ([4]byte, error) {
	var listType [4]byte

	if chnk == nil || chnk.ID != CIDList || chnk.Size < 4 {
		return listType, nil
	}

	var head [4]byte

	n, err := io.ReadFull(chnk.R, head[:])
	if err != nil {
		return listType, fmt.Errorf("failed to read LIST type: %w", err)
	}

	copy(listType[:], head[:])

	remaining := io.LimitReader(chnk.R, int64(chnk.Size-n))
	chnk.R = io.MultiReader(bytes.NewReader(head[:]), remaining)

	return listType, nil
}

type infoChunkHandler struct{}

func (h *infoChunkHandler) CanHandle(chunkID [4]byte, listType [4]byte) bool {
	return chunkID == CIDList && bytes.Equal(listType[:], CIDInfo)
}

func (h *infoChunkHandler) Decode(d *Decoder, ch *riff.Chunk) error {
	return DecodeListChunk(d, ch)
}

func (h *infoChunkHandler) Encode(e *Encoder) error {
	if e == nil {
		return nil
	}

	data := encodeInfoChunk(e.Metadata)
	if len(data) == 0 {
		return nil
	}

	return e.writeRawChunk(RawChunk{ID: CIDList, Data: data})
}

type clmChunkHandler struct{}

func (h *clmChunkHandler) CanHandle(chunkID [4]byte, _ [4]byte) bool {
	return chunkID == CIDClm
}

func (h *clmChunkHandler) Decode(d *Decoder, ch *riff.Chunk) error {
	return DecodeCycleChunk(d, ch)
}

// Encode is not supported: the clm chunk must precede the data chunk, so it
// travels as a RawChunk built by CycleChunk.
func (h *clmChunkHandler) Encode(_ *Encoder) error {
	return errChunkEncodeNotSupported
}
