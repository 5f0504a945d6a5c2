// Package main is the entrypoint for the connectgrid binary.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/connectgrid/internal/cli"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing.
func run(outW io.Writer, args []string) error {
	root := cli.NewRootCmd(outW)
	root.SetArgs(args)
	return root.Execute()
}
