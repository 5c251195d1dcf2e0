package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/timeline"
	md "github.com/nao1215/markdown"
)

// BreakdownMarkdown renders the per-symbol composition of a portfolio
// value as a table, biggest positions first.
func BreakdownMarkdown(user string, rows []coinfolio.BreakdownRow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Breakdown for %s", user))

	if len(rows) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Amount", "Value", "Portion"},
		Rows:   [][]string{},
	}
	for _, row := range rows {
		value := row.Value.String()
		portion := fmt.Sprintf("%.2f%%", row.Portion)
		if row.Unpriced {
			value = "no data"
			portion = "-"
		}
		table.Rows = append(table.Rows, []string{
			row.Symbol,
			row.Amount.String(),
			value,
			portion,
		})
	}
	doc.Table(table)

	return doc.String()
}

// AssetTableMarkdown renders the per-symbol composition with each
// symbol's 24h price move, biggest positions first. The move is
// anchored at the same instant as the rows, so a historical table
// shows that day's move, not today's.
func AssetTableMarkdown(user string, at timeline.Time, rows []coinfolio.BreakdownRow, market *coinfolio.PriceHistory) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Assets of %s", user))

	if len(rows) == 0 {
		doc.PlainText("No holdings.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Amount", "Value", "24h"},
		Rows:   [][]string{},
	}
	for _, row := range rows {
		value := row.Value.String()
		if row.Unpriced {
			value = "no data"
		}
		dayChange := "-"
		if change, ok := market.DayChangeAt(row.Symbol, at); ok {
			dayChange = change.String()
		}
		table.Rows = append(table.Rows, []string{
			row.Symbol,
			row.Amount.String(),
			value,
			dayChange,
		})
	}
	doc.Table(table)

	return doc.String()
}
