package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kolkov/rxgen"
)

func newCountCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count PATTERN",
		Short: `Print the number of strings that match PATTERN, or "infinite"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.compile(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(emit func(string) bool) error {
				emit(rxgen.FormatCount(p.Count()))
				return nil
			})
		},
	}
}
