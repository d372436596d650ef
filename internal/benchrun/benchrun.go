// Package benchrun measures empirical false positive rates across a
// sweep of insertion counts and records the results as CSV, one row
// per trial.
package benchrun

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/probkit/bloom"
)

// ErrInvalidConfig is returned when a sweep configuration is unusable.
var ErrInvalidConfig = errors.New("benchrun: invalid config")

// Config controls a benchmark sweep. For each n from MinN to MaxN
// (inclusive) in increments of Step, a filter is sized for n items at
// TargetP, filled with n random values, and probed with Probes values
// that were never inserted.
type Config struct {
	MinN    int
	MaxN    int
	Step    int
	Probes  int
	TargetP float64
	Seed    int64
	Scheme  bloom.HashScheme
}

// DefaultConfig returns the standard sweep: 1000 to 20000 items in
// steps of 1000, 5000 probes per trial, at a 1% target rate.
func DefaultConfig() Config {
	return Config{
		MinN:    1000,
		MaxN:    20000,
		Step:    1000,
		Probes:  5000,
		TargetP: 0.01,
		Seed:    42,
	}
}

func (cfg Config) validate() error {
	if cfg.MinN <= 0 {
		return fmt.Errorf("%w: min n must be greater than zero, got %d", ErrInvalidConfig, cfg.MinN)
	}
	if cfg.MaxN < cfg.MinN {
		return fmt.Errorf("%w: max n %d is below min n %d", ErrInvalidConfig, cfg.MaxN, cfg.MinN)
	}
	if cfg.Step <= 0 {
		return fmt.Errorf("%w: step must be greater than zero, got %d", ErrInvalidConfig, cfg.Step)
	}
	if cfg.Probes <= 0 {
		return fmt.Errorf("%w: probes must be greater than zero, got %d", ErrInvalidConfig, cfg.Probes)
	}
	if cfg.TargetP <= 0 || cfg.TargetP >= 1 {
		return fmt.Errorf("%w: target rate must be in (0, 1), got %v", ErrInvalidConfig, cfg.TargetP)
	}
	return nil
}

// Result holds one trial of a sweep.
type Result struct {
	N              int
	M              uint64
	K              uint64
	FalsePositives int
	Probes         int
	EmpiricalP     float64
	TheoryP        float64
	Elapsed        time.Duration
}

// Run executes the sweep and returns one Result per insertion count.
// The same Seed always produces the same inputs, so repeated runs are
// comparable.
func Run(cfg Config) ([]Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var results []Result
	for n := cfg.MinN; n <= cfg.MaxN; n += cfg.Step {
		res, err := runTrial(n, cfg, rng)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func runTrial(n int, cfg Config, rng *rand.Rand) (Result, error) {
	m, err := bloom.RequiredBits(uint64(n), cfg.TargetP)
	if err != nil {
		return Result{}, err
	}
	k := bloom.OptimalK(m, uint64(n))
	f, err := bloom.New(m, k, bloom.WithHashScheme(cfg.Scheme))
	if err != nil {
		return Result{}, err
	}

	// Generate inputs up front so only filter work is timed
	values := make([]string, n)
	inserted := make(map[string]struct{}, n)
	for i := range values {
		v := fmt.Sprintf("val-%d-%d", i, rng.Intn(1_000_000_000))
		values[i] = v
		inserted[v] = struct{}{}
	}

	start := time.Now()
	for _, v := range values {
		f.AddString(v)
	}

	// Probe with values that were never inserted; anything the filter
	// claims to contain is a false positive.
	falsePos := 0
	for i := 0; i < cfg.Probes; i++ {
		q := fmt.Sprintf("probe-%d-%d", i, rng.Intn(1_000_000_000))
		if f.TestString(q) {
			if _, ok := inserted[q]; !ok {
				falsePos++
			}
		}
	}
	elapsed := time.Since(start)

	return Result{
		N:              n,
		M:              m,
		K:              k,
		FalsePositives: falsePos,
		Probes:         cfg.Probes,
		EmpiricalP:     float64(falsePos) / float64(cfg.Probes),
		TheoryP:        f.EstimatedFalsePositiveRate(),
		Elapsed:        elapsed,
	}, nil
}
