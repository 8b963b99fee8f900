package main

import (
	"context"
	"fmt"
	"os"

	"github.com/input-output-hk/catalyst-forge-libs/releaseci/errors"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(errors.ExitCode(err))
	}
}
