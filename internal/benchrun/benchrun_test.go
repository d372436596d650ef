package benchrun

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/probkit/bloom"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{
		MinN:    500,
		MaxN:    1500,
		Step:    500,
		Probes:  400,
		TargetP: 0.02,
		Seed:    7,
	}
}

func TestDefaultConfig(t *testing.T) {
	// The standard sweep doubles as the CLI's flag defaults, so its
	// values are part of the package contract.
	cfg := DefaultConfig()
	require.NoError(t, cfg.validate())

	require.Equal(t, 1000, cfg.MinN)
	require.Equal(t, 20000, cfg.MaxN)
	require.Equal(t, 1000, cfg.Step)
	require.Equal(t, 5000, cfg.Probes)
	require.Equal(t, 0.01, cfg.TargetP)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, bloom.HashSHA256, cfg.Scheme)
}

func TestRunSweep(t *testing.T) {
	cfg := smallConfig()
	results, err := Run(cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		wantN := cfg.MinN + i*cfg.Step
		require.Equal(t, wantN, r.N)

		wantM, err := bloom.RequiredBits(uint64(wantN), cfg.TargetP)
		require.NoError(t, err)
		require.Equal(t, wantM, r.M)
		require.Equal(t, bloom.OptimalK(wantM, uint64(wantN)), r.K)

		require.Equal(t, cfg.Probes, r.Probes)
		require.GreaterOrEqual(t, r.FalsePositives, 0)
		require.LessOrEqual(t, r.FalsePositives, r.Probes)
		require.InDelta(t, float64(r.FalsePositives)/float64(r.Probes), r.EmpiricalP, 1e-12)

		// The sized filter should stay in the neighborhood of the target
		require.Greater(t, r.TheoryP, 0.0)
		require.Less(t, r.TheoryP, cfg.TargetP*2)
		require.Less(t, r.EmpiricalP, cfg.TargetP*5, "n=%d", r.N)

		require.GreaterOrEqual(t, r.Elapsed, time.Duration(0))
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	cfg := smallConfig()

	a, err := Run(cfg)
	require.NoError(t, err)
	b, err := Run(cfg)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].FalsePositives, b[i].FalsePositives, "trial %d", i)
		require.Equal(t, a[i].EmpiricalP, b[i].EmpiricalP, "trial %d", i)
	}
}

func TestRunSchemes(t *testing.T) {
	for _, scheme := range []bloom.HashScheme{bloom.HashSHA256, bloom.HashXXH3, bloom.HashMurmur3} {
		cfg := smallConfig()
		cfg.MaxN = cfg.MinN // single trial per scheme
		cfg.Scheme = scheme

		results, err := Run(cfg)
		require.NoError(t, err, "scheme %v", scheme)
		require.Len(t, results, 1)
		require.Less(t, results[0].EmpiricalP, cfg.TargetP*5, "scheme %v", scheme)
	}
}

func TestRunValidatesConfig(t *testing.T) {
	bad := []Config{
		{MinN: 0, MaxN: 100, Step: 10, Probes: 10, TargetP: 0.01},
		{MinN: 100, MaxN: 50, Step: 10, Probes: 10, TargetP: 0.01},
		{MinN: 100, MaxN: 200, Step: 0, Probes: 10, TargetP: 0.01},
		{MinN: 100, MaxN: 200, Step: 10, Probes: 0, TargetP: 0.01},
		{MinN: 100, MaxN: 200, Step: 10, Probes: 10, TargetP: 0},
		{MinN: 100, MaxN: 200, Step: 10, Probes: 10, TargetP: 1},
	}

	for i, cfg := range bad {
		_, err := Run(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig, "config %d", i)
	}
}

func TestCSVRoundtrip(t *testing.T) {
	cfg := smallConfig()
	results, err := Run(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))

	firstLine, _, found := strings.Cut(buf.String(), "\n")
	require.True(t, found)
	require.Equal(t, "n,m,k,false_pos,probes,empirical_p,theory_p,elapsed_s", firstLine)

	parsed, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(results))

	for i := range results {
		require.Equal(t, results[i].N, parsed[i].N)
		require.Equal(t, results[i].M, parsed[i].M)
		require.Equal(t, results[i].K, parsed[i].K)
		require.Equal(t, results[i].FalsePositives, parsed[i].FalsePositives)
		require.Equal(t, results[i].Probes, parsed[i].Probes)
		require.InDelta(t, results[i].EmpiricalP, parsed[i].EmpiricalP, 1e-6)
		require.InDelta(t, results[i].TheoryP, parsed[i].TheoryP, 1e-6)
		require.InDelta(t, results[i].Elapsed.Seconds(), parsed[i].Elapsed.Seconds(), 2e-6)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	in := "n,m,k\n100,959,7\n"
	_, err := ReadCSV(strings.NewReader(in))
	require.Error(t, err)
	require.Contains(t, err.Error(), "empirical_p")
}

func TestReadCSVBadNumber(t *testing.T) {
	in := "n,empirical_p,theory_p\nnotanumber,0.01,0.01\n"
	_, err := ReadCSV(strings.NewReader(in))
	require.Error(t, err)

	in = "n,empirical_p,theory_p\n100,bogus,0.01\n"
	_, err = ReadCSV(strings.NewReader(in))
	require.Error(t, err)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadCSVToleratesExtraColumns(t *testing.T) {
	// Only n, empirical_p, and theory_p are required
	in := "note,n,empirical_p,theory_p\nx,100,0.009800,0.010000\n"
	parsed, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.Equal(t, 100, parsed[0].N)
	require.InDelta(t, 0.0098, parsed[0].EmpiricalP, 1e-9)
}
