package main

import (
	"fmt"
	"math/rand"

	"github.com/probkit/bloom"
	"github.com/urfave/cli/v2"
)

var demoCommand = &cli.Command{
	Name:   "demo",
	Usage:  "Runs a quick insert-and-probe demonstration",
	Action: runDemo,
	Flags:  []cli.Flag{demoItemsFlag, demoTargetFlag, demoProbesFlag, hashFlag, seedFlag},
}

var (
	demoItemsFlag = &cli.IntFlag{
		Name:  "items",
		Usage: "Number of values to insert",
		Value: 1000,
	}
	demoTargetFlag = &cli.Float64Flag{
		Name:  "p",
		Usage: "Target false positive rate",
		Value: 0.01,
	}
	demoProbesFlag = &cli.IntFlag{
		Name:  "probes",
		Usage: "Number of never-inserted values to probe",
		Value: 5000,
	}
)

func runDemo(ctx *cli.Context) error {
	n := ctx.Int(demoItemsFlag.Name)
	if n <= 0 {
		return fmt.Errorf("items must be greater than zero, got %d", n)
	}
	p := ctx.Float64(demoTargetFlag.Name)
	scheme, err := schemeFromFlag(ctx)
	if err != nil {
		return err
	}

	m, err := bloom.RequiredBits(uint64(n), p)
	if err != nil {
		return err
	}
	k := bloom.OptimalK(m, uint64(n))
	fmt.Printf("Configured for n=%d, target p=%g: m=%d, k=%d\n", n, p, m, k)

	f, err := bloom.New(m, k, bloom.WithHashScheme(scheme), bloom.WithSeed(ctx.Uint64(seedFlag.Name)))
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42))
	values := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := fmt.Sprintf("item-%d-%d", i, rng.Intn(1_000_000))
		values[v] = struct{}{}
		f.AddString(v)
	}
	fmt.Printf("Inserted %d items\n", n)
	fmt.Printf("Estimated p=%.4f, fill ratio=%.3f\n", f.EstimatedFalsePositiveRate(), f.FillRatio())

	probes := ctx.Int(demoProbesFlag.Name)
	if probes <= 0 {
		return fmt.Errorf("probes must be greater than zero, got %d", probes)
	}
	falsePos := 0
	for i := 0; i < probes; i++ {
		probe := fmt.Sprintf("probe-%d-%d", i, rng.Intn(1_000_000))
		if f.TestString(probe) {
			if _, ok := values[probe]; !ok {
				falsePos++
			}
		}
	}
	fmt.Printf("Empirical false positive rate over %d probes: %.4f\n", probes, float64(falsePos)/float64(probes))
	return nil
}
