package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kolkov/rxgen"
)

var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

// SetBuildInfo records the values injected at link time.
func SetBuildInfo(version, commit, date string) {
	Version, GitCommit, BuildDate = version, commit, date
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rxgen version %s\n", Version)
			fmt.Fprintf(out, "  library: %s\n", rxgen.Version)
			fmt.Fprintf(out, "  commit:  %s\n", GitCommit)
			fmt.Fprintf(out, "  built:   %s\n", BuildDate)
			fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintln(out, "  regex:   coregex")
		},
	}
}
