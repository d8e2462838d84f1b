package renderer

import (
	"bytes"

	"github.com/etnz/papertrade"
	md "github.com/nao1215/markdown"
)

// QuotesMarkdown renders the instrument snapshot as a table, in catalog order.
func QuotesMarkdown(instruments []papertrade.Instrument) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Market")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Price", "Change"},
	}
	for _, inst := range instruments {
		table.Rows = append(table.Rows, []string{
			md.Bold(inst.Symbol),
			inst.Name,
			inst.Price.String(),
			inst.Change.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
