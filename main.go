package main

import (
	"fmt"
	"os"

	"github.com/conneroisu/tera/cmd"
	terrors "github.com/conneroisu/tera/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, terrors.FormatError(err))
		os.Exit(terrors.ExitCode(err))
	}
}
