package wavetable

import (
	"errors"
	"fmt"
	"math"
)

const (
	// WaveLength is the number of samples in every table.
	WaveLength = 2048
	// BitDepth is the bit depth of the encoded samples.
	BitDepth = 16
	// MaxVal is the largest encodable sample.
	MaxVal = 1<<(BitDepth-1) - 1
	// MinVal is the smallest encodable sample.
	MinVal = -(1 << (BitDepth - 1))
	// SampleRate is the frame rate written to the container.
	SampleRate = 44100
	// NumChannels is the channel count written to the container.
	NumChannels = 1

	// StageSize is how many tables a preset stage spans.
	StageSize = 12
	// StepSize is the flat-region growth per table in a stage.
	StepSize = float64(WaveLength) / (2 * StageSize)

	bytesPerSample = BitDepth / 8
)

var (
	// ErrInvalidParameter is wrapped by every generator precondition failure.
	ErrInvalidParameter = errors.New("invalid shape parameter")
	// ErrLengthMismatch is returned when blending tables of different lengths.
	ErrLengthMismatch = errors.New("table length mismatch")
	// ErrTableLength is returned when a bank holds a table that isn't WaveLength long.
	ErrTableLength = errors.New("table is not WaveLength samples long")
	// ErrEmptyRecipe is returned when building a recipe without steps.
	ErrEmptyRecipe = errors.New("recipe has no steps")
	// ErrUnknownPreset is returned for preset names that aren't registered.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrOddByteCount is returned when decoding a stream with a dangling byte.
	ErrOddByteCount = errors.New("encoded stream has an odd number of bytes")
	// ErrPartialTable is returned when a decoded stream ends mid-table.
	ErrPartialTable = errors.New("encoded stream ends inside a table")
)

// ParamError reports a shape parameter outside a generator's domain.
type ParamError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", e.Op, e.Param, e.Value, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidParameter) hold for every ParamError.
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// Table is one cycle of a periodic signal. Values are not clamped yet.
type Table []int

// Quantized returns the table clamped to the 16-bit range.
func (t Table) Quantized() []int16 {
	out := make([]int16, len(t))
	for i, v := range t {
		out[i] = Quantize(v)
	}

	return out
}

// Bank is an ordered set of tables. Players index tables by position.
type Bank []Table

// Frames returns the total number of samples held by the bank.
func (b Bank) Frames() int {
	var n int
	for _, table := range b {
		n += len(table)
	}

	return n
}

// Validate checks that every table is exactly WaveLength samples long.
func (b Bank) Validate() error {
	for i, table := range b {
		if len(table) != WaveLength {
			return fmt.Errorf("%w: table %d has %d samples", ErrTableLength, i, len(table))
		}
	}

	return nil
}

// roundSample rounds half to even and saturates to the int32 range so the
// float to int conversion stays defined for extreme parameters.
func roundSample(v float64) int {
	r := math.RoundToEven(v)

	switch {
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < math.MinInt32:
		return math.MinInt32
	default:
		return int(r)
	}
}

// roundCount rounds a sample count parameter and rejects values no table
// could hold.
func roundCount(op, param string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParamError{Op: op, Param: param, Value: v, Reason: "must be finite"}
	}

	r := math.RoundToEven(v)
	if r < 0 {
		return 0, &ParamError{Op: op, Param: param, Value: v, Reason: "must not be negative"}
	}

	if r > math.MaxInt32 {
		return 0, &ParamError{Op: op, Param: param, Value: v, Reason: "is too large"}
	}

	return int(r), nil
}
