package wavetable

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"
)

// Quantize clamps v to [MinVal, MaxVal].
func Quantize(v int) int16 {
	return int16(max(min(v, MaxVal), MinVal))
}

// Encode clamps every sample of every table and serializes the bank, in
// order, as little-endian signed 16-bit frames.
func Encode(bank Bank) []byte {
	data := make([]byte, 0, bank.Frames()*bytesPerSample)

	for _, table := range bank {
		for _, v := range table {
			data = binary.LittleEndian.AppendUint16(data, uint16(Quantize(v)))
		}
	}

	return data
}

// Decode splits a little-endian signed 16-bit stream into tables of length
// samples each.
func Decode(data []byte, length int) (Bank, error) {
	if length <= 0 {
		return nil, &ParamError{Op: "decode", Param: "length", Value: float64(length), Reason: "must be positive"}
	}

	if len(data)%bytesPerSample != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddByteCount, len(data))
	}

	samples := len(data) / bytesPerSample
	if samples%length != 0 {
		return nil, fmt.Errorf("%w: %d samples, table length %d", ErrPartialTable, samples, length)
	}

	bank := make(Bank, 0, samples/length)
	for start := 0; start < len(data); start += length * bytesPerSample {
		table := make(Table, length)
		for i := range table {
			off := start + i*bytesPerSample
			table[i] = int(int16(binary.LittleEndian.Uint16(data[off : off+bytesPerSample])))
		}

		bank = append(bank, table)
	}

	return bank, nil
}

// IntBuffer returns the clamped bank as a mono go-audio buffer.
func (b Bank) IntBuffer() *audio.IntBuffer {
	data := make([]int, 0, b.Frames())

	for _, table := range b {
		for _, v := range table {
			data = append(data, int(Quantize(v)))
		}
	}

	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: NumChannels,
			SampleRate:  SampleRate,
		},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
}
