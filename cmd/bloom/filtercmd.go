package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/probkit/bloom"
	"github.com/urfave/cli/v2"
)

var (
	filterCommand = &cli.Command{
		Name:  "filter",
		Usage: "Operations on serialized filter files",
		Subcommands: []*cli.Command{
			filterWriteCommand,
			filterInspectCommand,
			filterTestCommand,
		},
	}
	filterWriteCommand = &cli.Command{
		Name:      "write",
		Usage:     "Builds a filter from values and writes it to a file",
		ArgsUsage: "file [value ...]",
		Action:    filterWrite,
		Flags:     []cli.Flag{capacityFlag, targetRateFlag, hashFlag, seedFlag},
	}
	filterInspectCommand = &cli.Command{
		Name:      "inspect",
		Usage:     "Prints the parameters of a serialized filter",
		ArgsUsage: "file",
		Action:    filterInspect,
	}
	filterTestCommand = &cli.Command{
		Name:      "test",
		Usage:     "Tests values for membership in a serialized filter",
		ArgsUsage: "file value [value ...]",
		Action:    filterTest,
	}
)

var (
	capacityFlag = &cli.Uint64Flag{
		Name:  "capacity",
		Usage: "Number of values to size the filter for (default: number of values given)",
	}
	targetRateFlag = &cli.Float64Flag{
		Name:  "p",
		Usage: "Target false positive rate at capacity",
		Value: 0.01,
	}
)

func filterWrite(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("need output file as argument")
	}
	file := ctx.Args().Get(0)
	values := ctx.Args().Slice()[1:]

	// With no value arguments, read one value per line from stdin.
	if len(values) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				values = append(values, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	if len(values) == 0 {
		return errors.New("no values to insert (pass them as arguments or on stdin)")
	}

	n := ctx.Uint64(capacityFlag.Name)
	if n == 0 {
		n = uint64(len(values))
	}
	scheme, err := schemeFromFlag(ctx)
	if err != nil {
		return err
	}
	m, err := bloom.RequiredBits(n, ctx.Float64(targetRateFlag.Name))
	if err != nil {
		return err
	}
	f, err := bloom.New(m, bloom.OptimalK(m, n), bloom.WithHashScheme(scheme), bloom.WithSeed(ctx.Uint64(seedFlag.Name)))
	if err != nil {
		return err
	}
	for _, v := range values {
		f.AddString(v)
	}

	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (m=%d, k=%d, %d values)\n", file, f.M(), f.K(), len(values))
	return nil
}

func filterInspect(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need filter file as argument")
	}
	f, size, err := loadFilter(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{"File size", fmt.Sprintf("%d bytes", size)})
	table.Append([]string{"Bits (m)", strconv.FormatUint(f.M(), 10)})
	table.Append([]string{"Hash rounds (k)", strconv.FormatUint(f.K(), 10)})
	table.Append([]string{"Hash scheme", f.Scheme().String()})
	table.Append([]string{"Seed", strconv.FormatUint(f.Seed(), 10)})
	table.Append([]string{"Items added", strconv.FormatUint(f.Count(), 10)})
	table.Append([]string{"Fill ratio", fmt.Sprintf("%.3f", f.FillRatio())})
	table.Append([]string{"Estimated p", fmt.Sprintf("%.4f", f.EstimatedFalsePositiveRate())})
	table.Render()
	return nil
}

func filterTest(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("need filter file and at least one value")
	}
	f, _, err := loadFilter(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	for _, v := range ctx.Args().Slice()[1:] {
		verdict := "definitely absent"
		if f.TestString(v) {
			verdict = "maybe present"
		}
		fmt.Printf("%s: %s\n", v, verdict)
	}
	return nil
}

func loadFilter(path string) (*bloom.Filter, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := bloom.UnmarshalBinary(data)
	if err != nil {
		return nil, 0, err
	}
	return f, len(data), nil
}
