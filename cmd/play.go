package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"
)

type playCmd struct {
	realtime bool
	plain    bool
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "run a script of session commands" }
func (*playCmd) Usage() string {
	return `ptrade play [-realtime] [-plain] <script>

  Executes the session commands of a script, one per line. Prices only move
  on 'tick' lines, unless -realtime starts the market and the valuation
  refresh in the background. The first invalid command stops the script.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.realtime, "realtime", false, "run the market and the valuation refresh while the script plays")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	script, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
		return subcommands.ExitFailure
	}
	defer script.Close()

	sim, logger, err := newSimulator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer sim.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if c.realtime {
		if err := sim.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting simulator: %v\n", err)
			return subcommands.ExitFailure
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := sim.Stop(stopCtx); err != nil {
				logger.Warn().Err(err).Msg("simulator did not stop cleanly")
			}
		}()
	}

	render := renderMarkdown
	if c.plain {
		render = nil
	}
	if err := NewSession(sim, stdout, render).Run(ctx, script, "", true); err != nil {
		fmt.Fprintf(os.Stderr, "Error in %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
