// rxgen - random and exhaustive string generation from patterns
//
// Generates strings that match or do not match a regex-like pattern,
// enumerates every match and counts them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kolkov/rxgen"
	"github.com/kolkov/rxgen/cmd/rxgen/cmd"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetBuildInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		errorExit(err)
	}
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	var pe *rxgen.ParseError
	if errors.As(err, &pe) && pe.Context != "" {
		fmt.Fprintf(os.Stderr, "rxgen: %v\n%s\n", err, pe.Context)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "rxgen: %v\n", err)
	os.Exit(1)
}
