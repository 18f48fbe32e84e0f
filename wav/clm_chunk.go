package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-audio/riff"
)

// The "clm " chunk tells wavetable synths how many samples one cycle spans.
// Its payload is text such as "<!>2048 00000000 wavetable".

const (
	clmPrefix = "<!>"
	clmSuffix = " 00000000 wavetable"
)

var (
	errClmNilChunk   = errors.New("can't decode a nil clm chunk")
	errClmBadPayload = errors.New("malformed clm payload")
)

// CycleChunk builds the clm chunk announcing length samples per cycle. It
// is placed before the data chunk.
func CycleChunk(length int) RawChunk {
	data := []byte(clmPrefix + strconv.Itoa(length) + clmSuffix)

	return RawChunk{
		ID:         CIDClm,
		Size:       uint32(len(data)),
		Data:       data,
		BeforeData: true,
	}
}

// ParseCycleLength extracts the cycle length from a clm payload.
func ParseCycleLength(data []byte) (int, error) {
	rest, ok := bytes.CutPrefix(data, []byte(clmPrefix))
	if !ok {
		return 0, fmt.Errorf("%w: missing %q prefix", errClmBadPayload, clmPrefix)
	}

	if i := bytes.IndexAny(rest, " \x00"); i >= 0 {
		rest = rest[:i]
	}

	length, err := strconv.Atoi(string(rest))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errClmBadPayload, err)
	}

	if length <= 0 {
		return 0, fmt.Errorf("%w: cycle length %d", errClmBadPayload, length)
	}

	return length, nil
}

// DecodeCycleChunk reads a clm chunk into d.CycleLength.
func DecodeCycleChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errClmNilChunk
	}

	if d == nil {
		return errListNilDecoder
	}

	defer ch.Drain()

	data, err := io.ReadAll(ch)
	if err != nil {
		return fmt.Errorf("failed to read the clm chunk - %w", err)
	}

	length, err := ParseCycleLength(data)
	if err != nil {
		return err
	}

	d.CycleLength = length

	return nil
}
