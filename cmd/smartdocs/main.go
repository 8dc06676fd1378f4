package main

import (
	"fmt"
	"os"

	"smartdocs/internal/errors"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for rejected input and 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, errors.InvalidArgument) || errors.Is(err, errors.NotADirectory) {
		return 2
	}
	return 1
}
