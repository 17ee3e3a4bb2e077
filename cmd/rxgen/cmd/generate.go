package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kolkov/rxgen"
)

// newGenerateCommand builds "generate" (matching) or "negate".
func newGenerateCommand(opts *options, matching bool) *cobra.Command {
	var count int

	use, short := "generate PATTERN", "Print random strings that match PATTERN"
	if !matching {
		use, short = "negate PATTERN", "Print random strings that do not match PATTERN"
	}

	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") && opts.file.Count > 0 {
				count = opts.file.Count
			}
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			p, err := opts.compile(args[0])
			if err != nil {
				return err
			}
			opts.logger.Debug("generating", "matching", matching, "count", count, "seed", opts.seed)

			r := rxgen.NewRand(opts.seed)
			gen := p.Generate
			if !matching {
				gen = p.GenerateNotMatching
			}
			err = opts.run(cmd, func(emit func(string) bool) error {
				for i := 0; i < count; i++ {
					if !emit(gen(r)) {
						break
					}
				}
				return nil
			})
			opts.logger.Debug("oracle cache", "regexes", p.Stats().CachedRegexes)
			return err
		},
	}
	c.Flags().IntVarP(&count, "count", "n", 1, "number of strings to print")
	return c
}
