package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/subcommands"
)

// shutdownTimeout bounds the wait for the background tickers to stop.
const shutdownTimeout = 5 * time.Second

type runCmd struct {
	plain bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "start an interactive trading session" }
func (*runCmd) Usage() string {
	return `ptrade run [-plain]

  Starts the market and the valuation refresh, then reads session commands
  from the terminal until 'quit' or end of input. See 'ptrade topic session'.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	sim, logger, err := newSimulator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer sim.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := sim.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting simulator: %v\n", err)
		return subcommands.ExitFailure
	}

	render := renderMarkdown
	if c.plain {
		render = nil
	}
	session := NewSession(sim, stdout, render)
	session.quotes(ctx, nil)
	runErr := session.Run(ctx, os.Stdin, "> ", false)

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sim.Stop(stopCtx); err != nil {
		logger.Warn().Err(err).Msg("simulator did not stop cleanly")
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error reading commands: %v\n", runErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
