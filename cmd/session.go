package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
)

// errQuit ends a session.
var errQuit = errors.New("quit")

// Session interprets line commands against a Simulator.
type Session struct {
	sim    *papertrade.Simulator
	out    io.Writer
	render func(markdown string) string
}

// NewSession creates a session writing to out. render turns markdown into
// what is printed; nil prints markdown as is.
func NewSession(sim *papertrade.Simulator, out io.Writer, render func(string) string) *Session {
	if render == nil {
		render = func(s string) string { return s }
	}
	return &Session{sim: sim, out: out, render: render}
}

type sessionCommand struct {
	usage string
	help  string
	exec  func(s *Session, ctx context.Context, args []string) error
}

var sessionCommands map[string]sessionCommand

func init() {
	sessionCommands = map[string]sessionCommand{
		"buy":      {"buy SYMBOL N", "buy N shares of SYMBOL", (*Session).buy},
		"sell":     {"sell SYMBOL N", "sell N shares of SYMBOL", (*Session).sell},
		"quotes":   {"quotes", "show the market", (*Session).quotes},
		"holdings": {"holdings", "show cash and holdings", (*Session).holdings},
		"cash":     {"cash", "show the cash balance", (*Session).cash},
		"summary":  {"summary", "show the portfolio totals", (*Session).summary},
		"trades":   {"trades", "show the trade journal", (*Session).trades},
		"tick":     {"tick [N]", "move prices N times", (*Session).tick},
		"refresh":  {"refresh", "value the holdings now", (*Session).refresh},
		"wait":     {"wait DURATION", "pause, e.g. wait 5s", (*Session).wait},
		"inspect":  {"inspect [JSONPATH]", "print the state as JSON", (*Session).inspect},
		"export":   {"export FILE", "write the full report as HTML", (*Session).export},
		"help":     {"help", "list the commands", (*Session).help},
		"quit":     {"quit", "end the session", func(*Session, context.Context, []string) error { return errQuit }},
	}
}

// SessionCommands returns the names of the session commands, sorted.
func SessionCommands() []string {
	names := make([]string, 0, len(sessionCommands))
	for name := range sessionCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exec runs one command line. Blank lines and # comments are ignored.
// A rejected trade is not an error: it has already been reported to the
// notifier.
func (s *Session) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	c, ok := sessionCommands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type help for the list", name)
	}
	return c.exec(s, ctx, args)
}

// Run executes every line of r until EOF, quit or ctx is done. A non empty
// prompt is printed before each line. When stopOnError is false, command
// errors are printed and the session goes on.
func (s *Session) Run(ctx context.Context, r io.Reader, prompt string, stopOnError bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	lineNo := 0
	for {
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-scanErr:
				return err
			default:
				return nil
			}
		}
		lineNo++

		err := s.Exec(ctx, line)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err == nil:
		case stopOnError:
			return fmt.Errorf("line %d: %w", lineNo, err)
		default:
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Session) print(markdown string) {
	fmt.Fprint(s.out, s.render(markdown))
}

// tradeArgs parses SYMBOL N. Quantities that are not positive are rejected
// here, before reaching the ledger.
func tradeArgs(args []string) (string, papertrade.Quantity, error) {
	if len(args) != 2 {
		return "", papertrade.Quantity{}, errors.New("expected SYMBOL and a quantity")
	}
	qty, err := papertrade.ParseQuantity(args[1])
	if err != nil || !qty.IsPositive() {
		return "", papertrade.Quantity{}, fmt.Errorf("invalid quantity %q: must be a positive whole number", args[1])
	}
	return strings.ToUpper(args[0]), qty, nil
}

func (s *Session) buy(_ context.Context, args []string) error {
	symbol, qty, err := tradeArgs(args)
	if err != nil {
		return err
	}
	s.sim.Buy(symbol, qty)
	return nil
}

func (s *Session) sell(_ context.Context, args []string) error {
	symbol, qty, err := tradeArgs(args)
	if err != nil {
		return err
	}
	s.sim.Sell(symbol, qty)
	return nil
}

func (s *Session) quotes(context.Context, []string) error {
	s.print(renderer.QuotesMarkdown(s.sim.Market().Instruments()))
	return nil
}

func (s *Session) holdings(context.Context, []string) error {
	s.print(renderer.HoldingsMarkdown(s.sim.Ledger().Account()))
	return nil
}

func (s *Session) cash(context.Context, []string) error {
	fmt.Fprintf(s.out, "Cash: %s\n", s.sim.Ledger().Cash())
	return nil
}

func (s *Session) summary(context.Context, []string) error {
	s.print(renderer.SummaryMarkdown(s.sim.Ledger().Summary()))
	return nil
}

func (s *Session) trades(context.Context, []string) error {
	s.print(renderer.TradesMarkdown(s.sim.Ledger().Trades()))
	return nil
}

func (s *Session) tick(_ context.Context, args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid tick count %q", args[0])
		}
		n = v
	}
	for i := 0; i < n; i++ {
		s.sim.Tick()
	}
	return nil
}

func (s *Session) refresh(context.Context, []string) error {
	s.sim.Refresh()
	return nil
}

func (s *Session) wait(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("expected a duration, e.g. 5s")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	return nil
}

func (s *Session) inspect(_ context.Context, args []string) error {
	data, err := json.Marshal(s.sim.State())
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if len(args) > 0 {
		v, err = jsonpath.Get(strings.Join(args, " "), v)
		if err != nil {
			return fmt.Errorf("jsonpath: %w", err)
		}
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintf(s.out, "%s\n", out)
	return nil
}

func (s *Session) export(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("expected a file name")
	}
	page, err := renderer.HTML("ptrade report", renderer.ReportMarkdown(s.sim.State()))
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], []byte(page), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(s.out, "Report written to %s\n", args[0])
	return nil
}

func (s *Session) help(context.Context, []string) error {
	var b strings.Builder
	b.WriteString("| Command | Effect |\n|:---|:---|\n")
	for _, name := range SessionCommands() {
		c := sessionCommands[name]
		fmt.Fprintf(&b, "| `%s` | %s |\n", c.usage, c.help)
	}
	s.print(b.String())
	return nil
}
