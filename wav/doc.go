// Package wav reads and writes integer PCM RIFF/WAVE containers.
//
// Encoder writes 8/16/24/32-bit linear PCM either from go-audio IntBuffers
// or from frames that are already little-endian encoded. Besides the fmt and
// data chunks it can store:
//
//   - a LIST/INFO chunk built from Metadata
//   - a "clm " chunk announcing the single-cycle length of a wavetable
//   - any RawChunk, before or after the data chunk
//
// Decoder parses the same layout back and preserves chunks it doesn't know.
package wav
