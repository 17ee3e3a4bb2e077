// Package cmd implements the rxgen command line.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/kolkov/rxgen"
	"github.com/kolkov/rxgen/internal/config"
)

// options collects the persistent flags shared by every subcommand.
type options struct {
	cfgFile         string
	verbose         bool
	caseInsensitive bool
	infiniteRepeat  int
	dot             string
	whitespace      string
	seed            uint64
	timeout         time.Duration

	logger *slog.Logger
	file   *config.File
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rxgen",
		Short: "Generate, enumerate and count strings of a pattern",
		Long: `rxgen compiles a regex-like pattern and drives it with four engines:

  generate   random strings that match the pattern
  negate     random strings that do not match the pattern
  enumerate  every matching string, shortest repetitions first
  count      the number of matching strings (or "infinite")

Options may also be read from a TOML or YAML file with --config;
flags given on the command line take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "option file (.toml, .yaml or .yml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")
	flags.BoolVarP(&opts.caseInsensitive, "case-insensitive", "i", false, "match letters in any case")
	flags.IntVar(&opts.infiniteRepeat, "infinite-repeat", rxgen.DefaultInfiniteRepeat, "upper bound for *, + and {n,}")
	flags.StringVar(&opts.dot, "dot", "", "runes matched by '.' (default printable ASCII)")
	flags.StringVar(&opts.whitespace, "whitespace", "", `runes matched by \s (default " \t\n\v\f\r")`)
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed (0 picks one)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort after this long (0 waits forever)")

	rootCmd.AddCommand(
		newGenerateCommand(opts, true),
		newGenerateCommand(opts, false),
		newEnumerateCommand(opts),
		newCountCommand(opts),
		newParseCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

// load sets up logging and merges the option file under the flags.
func (o *options) load(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	o.file = &config.File{}
	if o.cfgFile != "" {
		f, err := config.Load(o.cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		o.file = f
		o.logger.Debug("loaded config", "path", o.cfgFile, "format", config.DetectFormat(o.cfgFile))
	}

	flags := cmd.Flags()
	f := o.file
	if !flags.Changed("case-insensitive") {
		o.caseInsensitive = o.caseInsensitive || f.CaseInsensitive
	}
	if !flags.Changed("infinite-repeat") && f.InfiniteRepeat > 0 {
		o.infiniteRepeat = f.InfiniteRepeat
	}
	if !flags.Changed("dot") && f.Dot != "" {
		o.dot = f.Dot
	}
	if !flags.Changed("whitespace") && f.Whitespace != "" {
		o.whitespace = f.Whitespace
	}
	if !flags.Changed("seed") && f.Seed != 0 {
		o.seed = f.Seed
	}
	if !flags.Changed("timeout") {
		d, err := f.TimeoutDuration()
		if err != nil {
			return err
		}
		if d > 0 {
			o.timeout = d
		}
	}
	if o.infiniteRepeat <= 0 {
		return fmt.Errorf("--infinite-repeat must be positive, got %d", o.infiniteRepeat)
	}
	if o.seed == 0 {
		o.seed = rand.Uint64()
	}
	return nil
}

// compile compiles pattern with the merged options.
func (o *options) compile(pattern string) (*rxgen.Pattern, error) {
	p, err := rxgen.CompileWithConfig(pattern, &rxgen.Config{
		InfiniteRepeat:  o.infiniteRepeat,
		CaseInsensitive: o.caseInsensitive,
		Dot:             o.dot,
		Whitespace:      o.whitespace,
	})
	if err != nil {
		return nil, err
	}
	o.logger.Debug("compiled pattern",
		"pattern", pattern,
		"case_insensitive", o.caseInsensitive,
		"infinite_repeat", o.infiniteRepeat)
	for _, w := range p.Warnings() {
		o.logger.Warn(w, "pattern", pattern)
	}
	return p, nil
}

// errTimeout is returned when a command exceeds --timeout.
var errTimeout = errors.New("timed out")

// run executes work, bounded by the timeout, writing through a buffered
// writer. The work function reports each line through emit, which returns
// false once run has given up on the output; work should return then.
//
// The generators cannot be interrupted; on timeout a worker busy inside one
// is abandoned and the process is expected to exit.
func (o *options) run(cmd *cobra.Command, work func(emit func(string) bool) error) error {
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	lines := make(chan string, 64)
	done := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	emit := func(s string) bool {
		select {
		case lines <- s:
			return true
		case <-stop:
			return false
		}
	}
	go func() {
		defer close(lines)
		done <- work(emit)
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	for {
		select {
		case s, ok := <-lines:
			if !ok {
				return <-done
			}
			if err := writeLine(out, s); err != nil {
				return err
			}
		case <-ctx.Done():
			o.logger.Debug("command aborted", "timeout", o.timeout)
			return fmt.Errorf("%w after %s", errTimeout, o.timeout)
		}
	}
}

func writeLine(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}
