package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/probkit/bloom/internal/benchrun"
	"github.com/probkit/bloom/internal/svgchart"
	"github.com/urfave/cli/v2"
)

var plotCommand = &cli.Command{
	Name:      "plot",
	Usage:     "Renders a benchmark CSV as an SVG line chart",
	ArgsUsage: "results.csv",
	Action:    runPlot,
	Flags:     []cli.Flag{plotOutFlag},
}

var plotOutFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "Output SVG path",
	Value: "false_positive.svg",
}

func runPlot(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need benchmark csv file as argument")
	}

	in, err := os.Open(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	results, err := benchrun.ReadCSV(in)
	in.Close()
	if err != nil {
		return err
	}

	empirical := svgchart.Series{Label: "Empirical"}
	theoretical := svgchart.Series{Label: "Theoretical"}
	for _, r := range results {
		empirical.Points = append(empirical.Points, svgchart.Point{X: float64(r.N), Y: r.EmpiricalP})
		theoretical.Points = append(theoretical.Points, svgchart.Point{X: float64(r.N), Y: r.TheoryP})
	}
	chart := svgchart.Chart{
		Title:  "Bloom Filter False Positive Rate",
		XLabel: "n (inserted items)",
		YLabel: "false positive probability",
		Series: []svgchart.Series{empirical, theoretical},
	}

	out := ctx.String(plotOutFlag.Name)
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := chart.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}
