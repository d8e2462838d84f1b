package renderer

import (
	"bytes"

	"github.com/etnz/papertrade"
	md "github.com/nao1215/markdown"
)

func SummaryMarkdown(s papertrade.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Net Worth"),
			md.Bold(s.NetWorth.String()),
		},
		Rows: [][]string{
			{"Cash", s.Cash.String()},
			{"Market Value", s.MarketValue.String()},
			{"Cost Basis", s.CostBasis.String()},
			{"Unrealized Return", s.Return.SignedString()},
			{"Return %", s.ReturnPercent.SignedString()},
		},
	})

	return doc.String()
}
