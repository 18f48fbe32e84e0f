package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDInfo is the list type of an INFO list.
	CIDInfo = []byte{'I', 'N', 'F', 'O'}
	// CIDClm is the chunk ID of the wavetable cycle length chunk.
	CIDClm = [4]byte{'c', 'l', 'm', ' '}

	// ErrPCMDataNotFound is returned when PCM data chunk is not found.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	// ErrDurationNilPointer is returned when calculating duration on a nil decoder.
	ErrDurationNilPointer = errors.New("can't calculate the duration of a nil pointer")
	// ErrUnsupportedFormat is returned for anything but integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported wav format")

	errUnhandledByteDepth = errors.New("unhandled byte depth")
	errZeroByteRate       = errors.New("can't compute a duration with a zero byte rate")
)

// Decoder handles the decoding of wav files.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser
	chunks *ChunkRegistry

	NumChans   uint16
	BitDepth   uint16
	SampleRate uint32

	AvgBytesPerSec uint32
	WavAudioFormat uint16
	FmtChunk       *FmtChunk

	err             error
	PCMSize         int
	pcmDataAccessed bool
	// PCMChunk is available so we can use the LimitReader
	PCMChunk *riff.Chunk
	// Metadata for the current file
	Metadata *Metadata
	// CycleLength is the single-cycle length announced by a clm chunk, 0 if absent.
	CycleLength int
	// UnknownChunks stores non-core chunks for optional round-trip writing.
	UnknownChunks []RawChunk

	unknownChunkOrder int
	// chunks ahead of fmt are captured on the first header read only
	preFmtCaptured bool
	// set when the previous chunk had an odd size and a pad byte follows it
	pendingPad bool
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
		chunks: newDefaultChunkRegistry(),
	}
}

// Rewind allows the decoder to be rewound to the beginning of the PCM data.
func (d *Decoder) Rewind() error {
	_, err := d.r.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek back to the start %w", err)
	}
	// we have to use a new parser since it's read only and can't be seeked
	d.parser = riff.New(d.r)
	d.pcmDataAccessed = false
	d.pendingPad = false
	d.PCMChunk = nil
	d.err = nil
	d.NumChans = 0
	d.FmtChunk = nil

	err = d.FwdToPCM()
	if err != nil {
		return fmt.Errorf("failed to seek to the PCM data: %w", err)
	}

	return nil
}

// Err returns the first non-EOF error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// IsValidFile verifies that the file is a readable integer PCM container.
func (d *Decoder) IsValidFile() bool {
	d.err = d.readHeaders()
	if d.err != nil {
		return false
	}

	if d.NumChans < 1 || d.WavAudioFormat != wavFormatPCM || !supportedBitDepth(int(d.BitDepth)) {
		return false
	}

	dur, err := d.Duration()
	if err != nil || dur < 0 {
		return false
	}

	return true
}

// ReadInfo reads the underlying reader until the fmt chunk is parsed.
// This method is safe to call multiple times.
func (d *Decoder) ReadInfo() {
	d.err = d.readHeaders()
}

// ReadMetadata walks every chunk of the file, decoding INFO and clm chunks
// and preserving the rest. The entire file will be read and should be
// rewinded if more data must be accessed.
func (d *Decoder) ReadMetadata() {
	d.ReadInfo()

	if d.Err() != nil {
		return
	}

	var (
		chunk *riff.Chunk
		err   error
	)

	seenData := d.PCMChunk != nil
	for err == nil {
		chunk, err = d.NextChunk()
		if err != nil {
			break
		}

		d.unknownChunkOrder++

		if chunk.ID == riff.DataFormatID {
			seenData = true

			chunk.Drain()

			continue
		}

		handled, handleErr := d.decodeChunkViaRegistry(chunk)
		if handleErr != nil && !errors.Is(handleErr, io.EOF) {
			d.err = handleErr

			return
		}

		if !handled {
			d.captureUnknownChunk(chunk, !seenData)

			if d.err != nil {
				return
			}
		}
	}
}

// FwdToPCM forwards the underlying reader until the start of the PCM chunk.
// Chunks met on the way go through the chunk registry.
// If the PCM chunk was already read, no data will be found (you need to rewind).
func (d *Decoder) FwdToPCM() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	d.err = d.readHeaders()
	if d.err != nil {
		return d.err
	}

	for {
		chunk, err := d.NextChunk()
		if errors.Is(err, io.EOF) {
			return ErrPCMDataNotFound
		}

		if err != nil {
			return err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = chunk.Size
			d.PCMChunk = chunk
			d.pcmDataAccessed = true

			return nil
		}

		handled, err := d.decodeChunkViaRegistry(chunk)
		if err != nil {
			d.err = err
			return d.err
		}

		if !handled {
			chunk.Drain()
		}
	}
}

// WasPCMAccessed returns positively if the PCM data was previously accessed.
func (d *Decoder) WasPCMAccessed() bool {
	if d == nil {
		return false
	}

	return d.pcmDataAccessed
}

// PCMBytes returns the raw little-endian content of the data chunk.
func (d *Decoder) PCMBytes() ([]byte, error) {
	if !d.WasPCMAccessed() {
		err := d.FwdToPCM()
		if err != nil {
			return nil, err
		}
	}

	if d.PCMChunk == nil {
		return nil, ErrPCMChunkNotFound
	}

	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	data, err := io.ReadAll(d.PCMChunk)
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	return data, nil
}

// FullPCMBuffer reads the whole data chunk into memory.
// 8-bit samples are returned unsigned, like they are stored.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	data, err := d.PCMBytes()
	if err != nil {
		return nil, err
	}

	samples, err := decodePCMSamples(data, int(d.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("could not decode samples: %w", err)
	}

	return &audio.IntBuffer{
		Data:           samples,
		Format:         d.Format(),
		SourceBitDepth: int(d.BitDepth),
	}, nil
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// NextChunk returns the next available chunk. The previous chunk must have
// been fully read or drained.
func (d *Decoder) NextChunk() (*riff.Chunk, error) {
	if err := d.readHeaders(); err != nil {
		d.err = fmt.Errorf("failed to read header - %w", err)
		return nil, d.err
	}

	return d.nextChunk()
}

func (d *Decoder) nextChunk() (*riff.Chunk, error) {
	// all RIFF chunks must be word aligned; the declared size of an odd
	// chunk excludes its pad byte.
	if d.pendingPad {
		d.pendingPad = false

		if _, err := io.CopyN(io.Discard, d.r, 1); err != nil {
			d.err = err
			return nil, d.err
		}
	}

	var (
		id   [4]byte
		size uint32
	)

	id, size, d.err = d.parser.IDnSize()
	if d.err != nil {
		if !errors.Is(d.err, io.EOF) && !errors.Is(d.err, io.ErrUnexpectedEOF) {
			d.err = fmt.Errorf("error reading chunk header - %w", d.err)
		}

		return nil, d.err
	}

	d.pendingPad = size%2 == 1

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(d.r, int64(size)),
	}, nil
}

// Duration returns the time duration of the PCM data. Before the data chunk
// was reached it is estimated from the RIFF size.
func (d *Decoder) Duration() (time.Duration, error) {
	if d == nil || d.parser == nil {
		return 0, ErrDurationNilPointer
	}

	if err := d.readHeaders(); err != nil {
		return 0, fmt.Errorf("failed to get duration: %w", err)
	}

	if d.AvgBytesPerSec == 0 {
		return 0, errZeroByteRate
	}

	size := int64(d.parser.Size)
	if d.PCMChunk != nil {
		size = int64(d.PCMSize)
	}

	return time.Duration(float64(size) / float64(d.AvgBytesPerSec) * float64(time.Second)), nil
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	return d.parser.String()
}

// readHeaders is safe to call multiple times.
func (d *Decoder) readHeaders() error {
	if d == nil || d.NumChans > 0 {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", d.parser.ID, riff.ErrFmtNotSupported)
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	for {
		chunk, err := d.nextChunk()
		if err != nil {
			return fmt.Errorf("fmt chunk not found: %w", err)
		}

		if chunk.ID == riff.FmtID {
			d.preFmtCaptured = true

			return d.processFmtChunk(chunk)
		}

		// chunks ahead of fmt still go through the registry
		handled, err := d.decodeChunkViaRegistry(chunk)
		if err != nil {
			return err
		}

		if !handled {
			if d.preFmtCaptured {
				chunk.Drain()

				continue
			}

			d.captureUnknownChunk(chunk, true)

			if d.err != nil {
				return d.err
			}
		}
	}
}

func (d *Decoder) processFmtChunk(chunk *riff.Chunk) error {
	fmtChunk, err := decodeFmtChunk(chunk, d.parser)
	if err != nil {
		return fmt.Errorf("failed to decode fmt chunk: %w", err)
	}

	if fmtChunk.NumChannels == 0 {
		return fmt.Errorf("%w: %d", errInvalidNumChannels, fmtChunk.NumChannels)
	}

	d.FmtChunk = fmtChunk
	d.NumChans = fmtChunk.NumChannels
	d.BitDepth = fmtChunk.BitsPerSample
	d.SampleRate = fmtChunk.SampleRate
	d.WavAudioFormat = fmtChunk.FormatTag
	d.AvgBytesPerSec = fmtChunk.AvgBytesPerSec

	return nil
}

func (d *Decoder) decodeChunkViaRegistry(chunk *riff.Chunk) (bool, error) {
	if d == nil || chunk == nil {
		return false, nil
	}

	if d.chunks == nil {
		d.chunks = newDefaultChunkRegistry()
	}

	return d.chunks.Decode(d, chunk)
}

func (d *Decoder) captureUnknownChunk(chunk *riff.Chunk, beforeData bool) {
	if d == nil || chunk == nil {
		return
	}

	data, err := io.ReadAll(chunk)
	if err != nil {
		d.err = fmt.Errorf("failed to read unknown chunk %s: %w", chunk.ID, err)

		return
	}

	chunk.Drain()

	d.UnknownChunks = append(d.UnknownChunks, RawChunk{
		ID:         chunk.ID,
		Size:       uint32(len(data)),
		Data:       data,
		Order:      d.unknownChunkOrder,
		BeforeData: beforeData,
	})
}
