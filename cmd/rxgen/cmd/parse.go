package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse PATTERN",
		Short: "Print the syntax tree of PATTERN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.compile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := p.Dump(out); err != nil {
				return err
			}
			for _, w := range p.Warnings() {
				if _, err := fmt.Fprintln(out, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
