package wav

// RawChunk stores a non-core RIFF/WAV chunk for round-trip preservation.
type RawChunk struct {
	ID [4]byte
	// Size mirrors len(Data) for preserved chunks.
	Size uint32
	Data []byte
	// Order is the original chunk order index encountered during decode.
	Order int
	// BeforeData indicates if this chunk appeared before the data chunk.
	BeforeData bool
}

func (c RawChunk) Clone() RawChunk {
	out := c
	out.Data = append([]byte(nil), c.Data...)

	return out
}

func cloneRawChunks(chunks []RawChunk) []RawChunk {
	if len(chunks) == 0 {
		return nil
	}

	out := make([]RawChunk, len(chunks))
	for i := range chunks {
		out[i] = chunks[i].Clone()
	}

	return out
}

// RawChunks returns a copy of preserved non-core chunks.
func (d *Decoder) RawChunks() []RawChunk {
	if d == nil {
		return nil
	}

	return cloneRawChunks(d.UnknownChunks)
}

// FormatChunk returns a copy of the parsed fmt chunk, if available.
func (d *Decoder) FormatChunk() *FmtChunk {
	if d == nil || d.FmtChunk == nil {
		return nil
	}

	return d.FmtChunk.Clone()
}

// RawChunks returns a copy of configured non-core chunks.
func (e *Encoder) RawChunks() []RawChunk {
	if e == nil {
		return nil
	}

	return cloneRawChunks(e.UnknownChunks)
}

// SetRawChunks replaces configured non-core chunks with the provided set.
func (e *Encoder) SetRawChunks(chunks []RawChunk) {
	if e == nil {
		return
	}

	e.UnknownChunks = cloneRawChunks(chunks)
}
