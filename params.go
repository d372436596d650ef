package bloom

import (
	"errors"
	"fmt"
	"math"
)

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// ErrInvalidParameter is returned when a sizing calculation or
// constructor receives arguments outside its domain.
var ErrInvalidParameter = errors.New("bloom: invalid parameter")

// RequiredBits returns the smallest bit array size m that keeps a filter
// holding n items at or below the target false positive rate p, assuming
// the optimal number of hash rounds.
// Formula: m = ceil(-n * ln(p) / ln(2)^2)
//
// n must be greater than zero and p must be in (0, 1).
func RequiredBits(n uint64, p float64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: expected item count must be greater than zero", ErrInvalidParameter)
	}
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: false positive rate must be in (0, 1), got %v", ErrInvalidParameter, p)
	}

	m := math.Ceil(-float64(n) * math.Log(p) / ln2Squared)
	if m >= float64(math.MaxUint64) {
		return 0, fmt.Errorf("%w: %d items at rate %v need a bit array beyond uint64 range", ErrInvalidParameter, n, p)
	}
	return uint64(m), nil
}

// OptimalK returns the number of hash rounds that minimizes the false
// positive rate for an m-bit filter holding n items.
// Formula: k = round((m/n) * ln(2)), clamped to at least 1.
func OptimalK(m, n uint64) uint64 {
	if n == 0 {
		return 1
	}
	k := uint64(math.Round(float64(m) / float64(n) * ln2))
	if k < 1 {
		k = 1
	}
	return k
}

// EstimateFalsePositiveRate estimates the false positive rate of an
// m-bit filter using k hash rounds after n insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(m, k, n uint64) float64 {
	if m == 0 || n == 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
