package bloom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiredBits(t *testing.T) {
	cases := []struct {
		n    uint64
		p    float64
		want uint64
	}{
		{1, 0.5, 2},
		{1000, 0.1, 4793},
		{1000, 0.01, 9586},
		{1000, 0.001, 14378},
		{10000, 0.01, 95851},
	}

	for _, tc := range cases {
		m, err := RequiredBits(tc.n, tc.p)
		require.NoError(t, err)
		require.Equal(t, tc.want, m, "RequiredBits(%d, %v)", tc.n, tc.p)
	}
}

func TestRequiredBitsInvalid(t *testing.T) {
	_, err := RequiredBits(0, 0.01)
	require.ErrorIs(t, err, ErrInvalidParameter)

	for _, p := range []float64{0, -0.1, 1, 1.5, math.NaN()} {
		_, err := RequiredBits(1000, p)
		require.ErrorIs(t, err, ErrInvalidParameter, "p=%v", p)
	}
}

func TestOptimalK(t *testing.T) {
	cases := []struct {
		m, n uint64
		want uint64
	}{
		{9586, 1000, 7},
		{95851, 10000, 7},
		{4793, 1000, 3},
		{100, 100, 1},
		{2, 1, 1},
		{1, 1000, 1}, // rounds to zero, clamped up
		{0, 5, 1},
		{1000, 0, 1},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, OptimalK(tc.m, tc.n), "OptimalK(%d, %d)", tc.m, tc.n)
	}
}

func TestEstimateFalsePositiveRate(t *testing.T) {
	// Degenerate inputs report a zero rate
	require.Equal(t, 0.0, EstimateFalsePositiveRate(9586, 7, 0))
	require.Equal(t, 0.0, EstimateFalsePositiveRate(0, 7, 100))

	// Cross-check against the closed form
	rate := EstimateFalsePositiveRate(9586, 7, 1000)
	expected := math.Pow(1-math.Exp(-7.0*1000.0/9586.0), 7)
	require.InDelta(t, expected, rate, 1e-12)

	// A filter at its sizing capacity sits near the target rate
	require.InDelta(t, 0.01, rate, 0.005)

	// The rate grows with the number of insertions
	prev := 0.0
	for _, n := range []uint64{100, 500, 1000, 2000, 5000, 20000} {
		r := EstimateFalsePositiveRate(9586, 7, n)
		require.Greater(t, r, prev, "n=%d", n)
		require.LessOrEqual(t, r, 1.0)
		prev = r
	}
}

func TestSizingConsistency(t *testing.T) {
	// RequiredBits and OptimalK must combine into a filter whose
	// predicted rate is close to the requested one. Rounding k can land
	// slightly above target, so allow a 1.5x margin.
	cases := []struct {
		n uint64
		p float64
	}{
		{500, 0.05},
		{1000, 0.01},
		{10000, 0.01},
		{10000, 0.001},
		{100000, 0.02},
	}

	for _, tc := range cases {
		m, err := RequiredBits(tc.n, tc.p)
		require.NoError(t, err)
		k := OptimalK(m, tc.n)
		require.GreaterOrEqual(t, k, uint64(1))

		est := EstimateFalsePositiveRate(m, k, tc.n)
		require.LessOrEqual(t, est, tc.p*1.5, "n=%d p=%v m=%d k=%d", tc.n, tc.p, m, k)
	}
}
