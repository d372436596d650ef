// bloom is a command line toolkit around the filter library: a quick
// demo, a false positive benchmark sweep with CSV output, an SVG
// plotter for the results, and read/write/test operations on
// serialized filter files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/probkit/bloom"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:        filepath.Base(os.Args[0]),
	Usage:       "bloom filter toolkit",
	Writer:      os.Stdout,
	HideVersion: true,
}

func init() {
	app.CommandNotFound = func(ctx *cli.Context, cmd string) {
		fmt.Fprintf(os.Stderr, "No such command: %s\n", cmd)
		os.Exit(1)
	}
	app.Commands = []*cli.Command{
		demoCommand,
		benchCommand,
		plotCommand,
		filterCommand,
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Flags shared by every command that constructs a filter.
var (
	hashFlag = &cli.StringFlag{
		Name:  "hash",
		Usage: "Hash scheme (sha256, xxh3, murmur3)",
		Value: "sha256",
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Hash seed for the filter",
		Value: 0,
	}
)

func schemeFromFlag(ctx *cli.Context) (bloom.HashScheme, error) {
	return bloom.ParseHashScheme(ctx.String(hashFlag.Name))
}
