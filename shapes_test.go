package wavetable

import (
	"errors"
	"math"
	"testing"
)

func TestSineKeyPoints(t *testing.T) {
	sine := Sine()

	if len(sine) != WaveLength {
		t.Fatalf("len=%d, want %d", len(sine), WaveLength)
	}

	testCases := []struct {
		x    int
		want int
	}{
		{0, 0},
		{WaveLength / 4, MaxVal},
		{WaveLength / 2, 0},
		{3 * WaveLength / 4, -MaxVal},
	}

	for _, tc := range testCases {
		if sine[tc.x] != tc.want {
			t.Errorf("sine[%d]=%d, want %d", tc.x, sine[tc.x], tc.want)
		}
	}
}

func TestTriangleSegments(t *testing.T) {
	tri, err := Triangle(WaveLength)
	if err != nil {
		t.Fatalf("Triangle: %v", err)
	}

	if len(tri) != WaveLength {
		t.Fatalf("len=%d, want %d", len(tri), WaveLength)
	}

	testCases := []struct {
		i    int
		want int
	}{
		{0, 0},
		{511, 32703},
		{512, MaxVal},
		{1024, 0},
		{1535, -32704},
		{1536, MinVal},
		{2047, -65},
	}

	for _, tc := range testCases {
		if tri[tc.i] != tc.want {
			t.Errorf("triangle[%d]=%d, want %d", tc.i, tri[tc.i], tc.want)
		}
	}
}

func TestTriangleIsSymmetric(t *testing.T) {
	tri, err := Triangle(WaveLength)
	if err != nil {
		t.Fatalf("Triangle: %v", err)
	}

	half := WaveLength / 2
	for i := range half {
		if d := tri[i] + tri[i+half]; d < -2 || d > 2 {
			t.Fatalf("triangle[%d]=%d, triangle[%d]=%d: not mirrored", i, tri[i], i+half, tri[i+half])
		}
	}
}

func TestSkewedTriangleLength(t *testing.T) {
	testCases := []struct {
		peak   float64
		length int
	}{
		{0, 0},
		{0, 1},
		{0, 100},
		{10.4, 100},
		{25, 100},
		{50, 100},
		{WaveLength / 8, WaveLength},
		{333, 777},
	}

	for _, tc := range testCases {
		table, err := SkewedTriangle(tc.peak, tc.length)
		if err != nil {
			t.Fatalf("SkewedTriangle(%v, %d): %v", tc.peak, tc.length, err)
		}

		if len(table) != tc.length {
			t.Errorf("SkewedTriangle(%v, %d) len=%d", tc.peak, tc.length, len(table))
		}
	}
}

func TestSkewedTrianglePreconditions(t *testing.T) {
	testCases := []struct {
		name   string
		peak   float64
		length int
		param  string
	}{
		{"negative length", 0, -1, "length"},
		{"negative peak", -3, 100, "peak"},
		{"peak past half", 51, 100, "peak"},
		{"nan peak", math.NaN(), 100, "peak"},
		{"inf peak", math.Inf(1), 100, "peak"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SkewedTriangle(tc.peak, tc.length)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err=%v, want ErrInvalidParameter", err)
			}

			var perr *ParamError
			if !errors.As(err, &perr) {
				t.Fatalf("err=%T, want *ParamError", err)
			}

			if perr.Param != tc.param {
				t.Fatalf("param=%q, want %q", perr.Param, tc.param)
			}
		})
	}
}

func TestTriangleNegativeLength(t *testing.T) {
	if _, err := Triangle(-8); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err=%v, want ErrInvalidParameter", err)
	}
}

func TestSawIsNonIncreasing(t *testing.T) {
	saw, err := SawSquare(0, 0)
	if err != nil {
		t.Fatalf("SawSquare: %v", err)
	}

	if len(saw) != WaveLength {
		t.Fatalf("len=%d, want %d", len(saw), WaveLength)
	}

	if saw[0] != MaxVal {
		t.Fatalf("saw[0]=%d, want %d", saw[0], MaxVal)
	}

	if saw[WaveLength-1] != -32736 {
		t.Fatalf("saw[last]=%d, want -32736", saw[WaveLength-1])
	}

	for i := 1; i < len(saw); i++ {
		if saw[i] > saw[i-1] {
			t.Fatalf("saw[%d]=%d > saw[%d]=%d", i, saw[i], i-1, saw[i-1])
		}
	}
}

func TestPureSquare(t *testing.T) {
	square, err := SawSquare(WaveLength/2, WaveLength/2)
	if err != nil {
		t.Fatalf("SawSquare: %v", err)
	}

	for i, v := range square {
		want := MaxVal
		if i >= WaveLength/2 {
			want = -MaxVal
		}

		if v != want {
			t.Fatalf("square[%d]=%d, want %d", i, v, want)
		}
	}
}

func TestSawSquarePlateaus(t *testing.T) {
	table, err := SawSquare(WaveLength/4, WaveLength/4)
	if err != nil {
		t.Fatalf("SawSquare: %v", err)
	}

	if len(table) != WaveLength {
		t.Fatalf("len=%d, want %d", len(table), WaveLength)
	}

	for i := range WaveLength / 4 {
		if table[i] != MaxVal {
			t.Fatalf("table[%d]=%d, want %d", i, table[i], MaxVal)
		}

		if j := WaveLength - 1 - i; table[j] != -MaxVal {
			t.Fatalf("table[%d]=%d, want %d", j, table[j], -MaxVal)
		}
	}

	// the ramp restarts at the top of the range
	if table[WaveLength/4] != MaxVal {
		t.Fatalf("ramp start=%d, want %d", table[WaveLength/4], MaxVal)
	}
}

func TestSawSquareRoundsCounts(t *testing.T) {
	// half to even: 2.5 -> 2 and 3.5 -> 4, leaving a 2042 sample ramp
	table, err := SawSquare(2.5, 3.5)
	if err != nil {
		t.Fatalf("SawSquare: %v", err)
	}

	want := map[int]int{
		2:              MaxVal,
		3:              32735,
		WaveLength - 5: -32736,
		WaveLength - 4: -MaxVal,
		WaveLength - 1: -MaxVal,
	}

	for i, v := range want {
		if table[i] != v {
			t.Errorf("table[%d]=%d, want %d", i, table[i], v)
		}
	}
}

func TestSawSquarePreconditions(t *testing.T) {
	testCases := []struct {
		name       string
		start, end float64
	}{
		{"negative start", -1, 0},
		{"negative end", 0, -1},
		{"too long", WaveLength, 1},
		{"nan", math.NaN(), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := SawSquare(tc.start, tc.end); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err=%v, want ErrInvalidParameter", err)
			}
		})
	}
}
