package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/coinfolio"
	md "github.com/nao1215/markdown"
)

// HoldingsMarkdown renders a holdings snapshot as a table.
func HoldingsMarkdown(user string, snapshot coinfolio.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Holdings of %s", user))

	if snapshot.Len() == 0 {
		doc.PlainTextf("Nothing held on %s.", snapshot.At())
		return doc.String()
	}

	doc.PlainTextf("As of %s:", snapshot.At())
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Amount"},
		Rows:   [][]string{},
	}
	for sym, amount := range snapshot.All() {
		table.Rows = append(table.Rows, []string{sym, amount.String()})
	}
	doc.Table(table)

	return doc.String()
}

// TransactionsMarkdown renders a ledger's transactions as a table, in
// chronological order.
func TransactionsMarkdown(user string, txs []coinfolio.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Ledger of %s", user))

	if len(txs) == 0 {
		doc.PlainText("No transactions recorded.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Date", "Type", "Detail"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.When().String(),
			string(tx.What()),
			Transaction(tx),
		})
	}
	doc.Table(table)

	return doc.String()
}
