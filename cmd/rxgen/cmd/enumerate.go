package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultLimit caps enumeration unless --limit says otherwise.
const defaultLimit = 1000

func newEnumerateCommand(opts *options) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "enumerate PATTERN",
		Short: "Print every string that matches PATTERN",
		Long: `Print every string that matches PATTERN, shortest repetitions first.

Unbounded quantifiers stop at --infinite-repeat. Patterns with negative
lookaround never run out; --limit bounds the output (0 for no limit).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") && opts.file.Limit > 0 {
				limit = opts.file.Limit
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}
			p, err := opts.compile(args[0])
			if err != nil {
				return err
			}
			err = opts.run(cmd, func(emit func(string) bool) error {
				n := 0
				for it := p.Iterator(); it.HasNext(); n++ {
					if limit > 0 && n >= limit {
						opts.logger.Debug("enumeration truncated", "limit", limit)
						break
					}
					if !emit(it.Next()) {
						break
					}
				}
				return nil
			})
			opts.logger.Debug("oracle cache", "regexes", p.Stats().CachedRegexes)
			return err
		},
	}
	c.Flags().IntVar(&limit, "limit", defaultLimit, "maximum number of strings (0 = no limit)")
	return c
}
