package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type quotesCmd struct {
	ticks  int
	follow bool
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "show market quotes" }
func (*quotesCmd) Usage() string {
	return `ptrade quotes [-n <ticks>] [-follow]

  Prints the market after advancing it by -n ticks. With -follow, the market
  runs on its own cadence and every new set of quotes is printed, until
  interrupted or, when -n is set, after n updates.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.ticks, "n", 0, "number of ticks")
	f.BoolVar(&c.follow, "follow", false, "keep printing quotes as the market moves")
}

func (c *quotesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticks < 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must be >= 0")
		return subcommands.ExitUsageError
	}

	sim, _, err := newSimulator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer sim.Close()
	market := sim.Market()

	if !c.follow {
		for i := 0; i < c.ticks; i++ {
			market.Tick()
		}
		printMarkdown(renderer.QuotesMarkdown(market.Instruments()))
		return subcommands.ExitSuccess
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := market.Updates().Subscribe()
	defer sub.Unsubscribe()
	<-sub.C() // skip the replayed snapshot, it is printed right away
	printMarkdown(renderer.QuotesMarkdown(market.Instruments()))

	done := make(chan error, 1)
	go func() { done <- market.Run(ctx) }()

	for printed := 0; c.ticks == 0 || printed < c.ticks; printed++ {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case instruments := <-sub.C():
			printMarkdown(renderer.QuotesMarkdown(instruments))
		}
	}
	cancel()
	<-done
	return subcommands.ExitSuccess
}
