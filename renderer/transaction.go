package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/papertrade"
	md "github.com/nao1215/markdown"
)

// Trade renders a trade to a one line string.
func Trade(t papertrade.Trade) string {
	switch t.Command {
	case papertrade.CmdBuy:
		return fmt.Sprintf("Bought %s %s at %s for %s", t.Quantity, t.Symbol, t.Price, t.Amount)
	case papertrade.CmdSell:
		return fmt.Sprintf("Sold %s %s at %s for %s", t.Quantity, t.Symbol, t.Price, t.Amount)
	default:
		return string(t.Command)
	}
}

// TradesMarkdown renders the trade journal, oldest first.
func TradesMarkdown(trades []papertrade.Trade) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trades")
	if len(trades) == 0 {
		doc.PlainText("No trades yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Command", "Symbol", "Quantity", "Price", "Amount"},
	}
	for _, t := range trades {
		table.Rows = append(table.Rows, []string{
			t.Time.Format(time.TimeOnly),
			string(t.Command),
			t.Symbol,
			t.Quantity.String(),
			t.Price.String(),
			t.Amount.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
