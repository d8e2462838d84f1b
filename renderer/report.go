package renderer

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/etnz/papertrade"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ReportMarkdown renders the whole state of a simulation as one document.
func ReportMarkdown(s papertrade.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", SummaryMarkdown(s.Summary))
	fmt.Fprintf(&b, "%s\n", HoldingsMarkdown(papertrade.Account{Cash: s.Cash, Holdings: s.Holdings}))
	fmt.Fprintf(&b, "%s\n", QuotesMarkdown(s.Instruments))
	fmt.Fprintf(&b, "%s\n", TradesMarkdown(s.Trades))
	return b.String()
}

var converter = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown document into a standalone HTML page.
func HTML(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := converter.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	b.Write(body.Bytes())
	fmt.Fprintf(&b, "<footer>Generated %s</footer>\n</body>\n</html>\n", time.Now().Format(time.RFC3339))
	return b.String(), nil
}
