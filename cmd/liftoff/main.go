// Package main is the entry point for the liftoff companion CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	serrors "github.com/shipctl/scaffold/internal/errors"
	"github.com/shipctl/scaffold/internal/liftoff"
)

func main() {
	rootCmd := liftoff.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *serrors.ExitError
		if errors.As(err, &exitErr) {
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
