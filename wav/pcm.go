package wav

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-audio/audio"
)

const (
	wavFormatPCM       = 1
	maxPCMInt8Unsigned = 255
)

var errUnsupportedFrameBitSize = errors.New("can't add frames of bit size")

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// clampPCM limits v to the range of the bit depth. 8-bit PCM is unsigned.
func clampPCM(v, bitDepth int) int {
	if bitDepth == 8 {
		return max(min(v, maxPCMInt8Unsigned), 0)
	}

	hi := 1<<(bitDepth-1) - 1
	lo := -(1 << (bitDepth - 1))

	return max(min(v, hi), lo)
}

// appendPCMSample clamps v and appends its little-endian encoding.
func appendPCMSample(dst []byte, v, bitDepth int) ([]byte, error) {
	v = clampPCM(v, bitDepth)

	switch bitDepth {
	case 8:
		return append(dst, byte(v)), nil
	case 16:
		return binary.LittleEndian.AppendUint16(dst, uint16(int16(v))), nil
	case 24:
		return append(dst, audio.Int32toInt24LEBytes(int32(v))...), nil
	case 32:
		return binary.LittleEndian.AppendUint32(dst, uint32(int32(v))), nil
	default:
		return dst, fmt.Errorf("%w: %d", errUnsupportedFrameBitSize, bitDepth)
	}
}

// decodePCMSamples converts little-endian PCM bytes into ints. A trailing
// partial sample is ignored.
func decodePCMSamples(data []byte, bitDepth int) ([]int, error) {
	if !supportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", errUnhandledByteDepth, bitDepth)
	}

	size := bytesPerSample(bitDepth)
	out := make([]int, 0, len(data)/size)

	for off := 0; off+size <= len(data); off += size {
		raw := data[off : off+size]

		switch bitDepth {
		case 8:
			// 8bit values are unsigned
			out = append(out, int(raw[0]))
		case 16:
			out = append(out, int(int16(binary.LittleEndian.Uint16(raw))))
		case 24:
			out = append(out, int(audio.Int24LETo32(raw)))
		case 32:
			out = append(out, int(int32(binary.LittleEndian.Uint32(raw))))
		}
	}

	return out, nil
}
