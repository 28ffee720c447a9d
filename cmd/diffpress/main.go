// Package main is the entry point for the diffpress CLI.
package main

import (
	"os"

	"github.com/pr-review-toolkit/diffpress/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}
