package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/timeline"
	md "github.com/nao1215/markdown"
)

// ValueMarkdown renders the total value of a user's portfolio at an
// instant.
func ValueMarkdown(user string, at timeline.Time, value coinfolio.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Portfolio of %s", user))
	doc.PlainTextf("On %s the portfolio is worth **%s**.", at, value)
	return doc.String()
}

// ChangeMarkdown renders the evolution of a user's portfolio value over
// a window.
func ChangeMarkdown(user string, from, to timeline.Time, change coinfolio.Change) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Change for %s", user))
	doc.PlainTextf("From %s to %s: %s to %s, **%s**.", from, to, change.Old, change.New, change)
	return doc.String()
}

// HistoryMarkdown renders sampled portfolio values as a table.
func HistoryMarkdown(user string, points []coinfolio.HistoryPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Value history for %s", user))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Date", "Value"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.At.String(),
			p.Value.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
