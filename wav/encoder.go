package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	errNilBuffer          = errors.New("can't add a nil buffer")
	errAlreadyWroteHdr    = errors.New("already wrote header")
	errNilEncoder         = errors.New("can't write a nil encoder")
	errNilWriter          = errors.New("can't write to a nil writer")
	errInvalidNumChannels = errors.New("invalid number of channels")
	errMisalignedPCM      = errors.New("PCM data isn't a whole number of frames")
)

// Encoder encodes LPCM data into a wav container.
type Encoder struct {
	w   io.WriteSeeker
	buf *bytes.Buffer

	SampleRate int
	BitDepth   int
	NumChans   int

	// Metadata is written as a LIST/INFO chunk after the data chunk.
	Metadata *Metadata
	// UnknownChunks contains non-core chunks to write, before or after the
	// data chunk depending on RawChunk.BeforeData.
	UnknownChunks []RawChunk

	WrittenBytes     int
	samples          int
	pcmChunkStarted  bool
	pcmChunkSizePos  int
	wroteHeader      bool // true if we've written the header out
	wroteUnknownPre  bool
	wroteUnknownPost bool
	closed           bool
}

// NewEncoder creates a new integer PCM encoder.
// The container is only valid once Close was called.
func NewEncoder(w io.WriteSeeker, sampleRate, bitDepth, numChans int) *Encoder {
	return &Encoder{
		w:          w,
		buf:        bytes.NewBuffer(make([]byte, 0, bytesNumFromDuration(time.Second, sampleRate, bitDepth)*max(numChans, 1))),
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		NumChans:   numChans,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

// FrameCount returns the number of frames written so far.
func (e *Encoder) FrameCount() int {
	if e == nil {
		return 0
	}

	return e.samples / max(e.NumChans, 1)
}

func (e *Encoder) blockAlign() int {
	return e.NumChans * bytesPerSample(e.BitDepth)
}

func (e *Encoder) writeHeader() error {
	if e == nil {
		return errNilEncoder
	}

	if e.wroteHeader {
		return errAlreadyWroteHdr
	}

	if e.w == nil {
		return errNilWriter
	}

	if e.NumChans < 1 {
		return fmt.Errorf("%w: %d", errInvalidNumChannels, e.NumChans)
	}

	if !supportedBitDepth(e.BitDepth) {
		return fmt.Errorf("%w: %d", errUnsupportedFrameBitSize, e.BitDepth)
	}

	e.wroteHeader = true

	// riff ID
	err := e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}
	// file size uint32, to update later on.
	err = e.AddLE(uint32(4294967295))
	if err != nil {
		return err
	}
	// wave headers
	err = e.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	return e.writeFmtChunk()
}

func (e *Encoder) writeFmtChunk() error {
	chunk := newPCMFmtChunk(e.SampleRate, e.BitDepth, e.NumChans)

	err := e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(uint32(16))
	if err != nil {
		return err
	}

	fields := []struct {
		name  string
		value any
	}{
		{"format tag", chunk.FormatTag},
		{"number of channels", chunk.NumChannels},
		{"sample rate", chunk.SampleRate},
		{"avg bytes per sec", chunk.AvgBytesPerSec},
		{"block align", chunk.BlockAlign},
		{"bits per sample", chunk.BitsPerSample},
	}

	for _, field := range fields {
		if err := e.AddLE(field.value); err != nil {
			return fmt.Errorf("error encoding the %s - %w", field.name, err)
		}
	}

	return nil
}

// startPCMChunk writes the header, the pre-data chunks and the data chunk
// header with a placeholder size.
func (e *Encoder) startPCMChunk() error {
	if e.pcmChunkStarted {
		return nil
	}

	if !e.wroteHeader {
		if err := e.writeHeader(); err != nil {
			return err
		}
	}

	if !e.wroteUnknownPre {
		if err := e.writeUnknownChunks(true); err != nil {
			return fmt.Errorf("error encoding pre-data unknown chunks %w", err)
		}

		e.wroteUnknownPre = true
	}

	// sound header
	err := e.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	e.pcmChunkStarted = true

	// write a temporary chunksize
	e.pcmChunkSizePos = e.WrittenBytes

	err = e.AddLE(uint32(4294967295))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	return nil
}

// Write encodes and writes the passed buffer to the underlying writer.
// Samples are clamped to the encoder bit depth; 8-bit samples are unsigned.
// Don't forget to Close() the encoder or the file won't be valid.
func (e *Encoder) Write(buf *audio.IntBuffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if err := e.startPCMChunk(); err != nil {
		return err
	}

	// a trailing partial frame is dropped
	data := buf.Data[:len(buf.Data)/e.NumChans*e.NumChans]

	var err error

	out := e.buf.AvailableBuffer()
	for _, v := range data {
		out, err = appendPCMSample(out, v, e.BitDepth)
		if err != nil {
			return err
		}
	}

	e.buf.Write(out)

	return e.flush(len(data))
}

// WritePCM writes frames that are already little-endian encoded at the
// encoder bit depth. data must hold a whole number of frames.
func (e *Encoder) WritePCM(data []byte) error {
	if e == nil {
		return errNilEncoder
	}

	if err := e.startPCMChunk(); err != nil {
		return err
	}

	if len(data)%e.blockAlign() != 0 {
		return fmt.Errorf("%w: %d bytes, block align %d", errMisalignedPCM, len(data), e.blockAlign())
	}

	e.buf.Write(data)

	return e.flush(len(data) / bytesPerSample(e.BitDepth))
}

// WriteFrame writes a single sample to the underlying writer. Multichannel
// callers write one sample per channel.
func (e *Encoder) WriteFrame(value int) error {
	if err := e.startPCMChunk(); err != nil {
		return err
	}

	b, err := appendPCMSample(e.buf.AvailableBuffer(), value, e.BitDepth)
	if err != nil {
		return err
	}

	e.buf.Write(b)

	return e.flush(1)
}

func (e *Encoder) flush(samples int) error {
	n, err := e.w.Write(e.buf.Bytes())
	e.WrittenBytes += n
	e.buf.Reset()

	if err != nil {
		return fmt.Errorf("failed to write buffer: %w", err)
	}

	e.samples += samples

	return nil
}

func (e *Encoder) writeRawChunk(chunk RawChunk) error {
	size := uint32(len(chunk.Data))

	err := e.AddBE(chunk.ID)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk id %q: %w", chunk.ID, err)
	}

	err = e.AddLE(size)
	if err != nil {
		return fmt.Errorf("failed to write raw chunk size %q: %w", chunk.ID, err)
	}

	if len(chunk.Data) > 0 {
		n, err := e.w.Write(chunk.Data)
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk payload %q: %w", chunk.ID, err)
		}
	}

	if size%2 == 1 {
		n, err := e.w.Write([]byte{0})
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write raw chunk padding %q: %w", chunk.ID, err)
		}
	}

	return nil
}

func (e *Encoder) writeUnknownChunks(beforeData bool) error {
	for _, chunk := range e.UnknownChunks {
		if chunk.BeforeData != beforeData {
			continue
		}

		err := e.writeRawChunk(chunk)
		if err != nil {
			return err
		}
	}

	return nil
}

// Close finishes the data chunk, writes trailing chunks and metadata, and
// updates the header sizes. An encoder that never received frames still
// produces a valid, empty container.
// Note that the underlying writer is NOT being closed.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil || e.closed {
		return nil
	}

	if err := e.startPCMChunk(); err != nil {
		return err
	}

	e.closed = true
	dataSize := e.samples * bytesPerSample(e.BitDepth)

	// the data chunk is word aligned but its size excludes the pad byte
	if dataSize%2 == 1 {
		n, err := e.w.Write([]byte{0})
		e.WrittenBytes += n

		if err != nil {
			return fmt.Errorf("failed to write data chunk padding: %w", err)
		}
	}

	if !e.wroteUnknownPost {
		err := e.writeUnknownChunks(false)
		if err != nil {
			return fmt.Errorf("failed to write post-data unknown chunks: %w", err)
		}

		e.wroteUnknownPost = true
	}

	// inject metadata at the end to not trip implementation not supporting
	// metadata chunks
	if err := newDefaultChunkRegistry().Encode(e); err != nil {
		return fmt.Errorf("failed to write metadata - %w", err)
	}

	// go back and write total size in header
	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	written := e.WrittenBytes

	err := e.AddLE(uint32(written) - 8)
	if err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	// rewrite the audio chunk length header
	if _, err := e.w.Seek(int64(e.pcmChunkSizePos), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to PCM chunk size position: %w", err)
	}

	err = e.AddLE(uint32(dataSize))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	e.WrittenBytes = written

	// jump back to the end of the file.
	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}
