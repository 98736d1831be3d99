package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/vitaminmoo/hexview/internal/cli"
	"github.com/vitaminmoo/hexview/internal/config"
)

func main() {
	var c cli.CLI
	parser, err := cli.New(&c, cli.StdStreams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "hexview: error: %v\n", err)
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hexview: error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Use --help to show usage.")
		os.Exit(2)
	}

	if err := ctx.Run(&c); err != nil {
		fmt.Fprintf(os.Stderr, "hexview: error: %v\n", err)
		if errors.Is(err, config.ErrInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
