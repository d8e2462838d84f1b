package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/papertrade"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders the account: cash first, then one row per holding.
func HoldingsMarkdown(a papertrade.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.PlainText(fmt.Sprintf("Cash: %s", md.Bold(a.Cash.String())))

	if len(a.Holdings) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Cost Basis", "Price", "Market Value", "Return", "%"},
	}
	for _, h := range a.Holdings {
		table.Rows = append(table.Rows, []string{
			md.Bold(h.Symbol),
			h.Quantity.String(),
			h.CostBasis.String(),
			h.LastPrice.String(),
			h.MarketValue.String(),
			h.Return.SignedString(),
			h.ReturnPercent().SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
