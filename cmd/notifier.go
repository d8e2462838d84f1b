package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// ConsoleNotifier prints trade outcomes as coloured one-liners.
type ConsoleNotifier struct {
	out io.Writer
}

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Success(msg string) {
	fmt.Fprintln(n.out, successStyle.Render("✓ "+msg))
}

func (n *ConsoleNotifier) Error(msg string) {
	fmt.Fprintln(n.out, errorStyle.Render("✗ "+msg))
}
