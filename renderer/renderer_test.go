package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/timeline"
)

func TestTransaction(t *testing.T) {
	at := timeline.Unix(1000)
	testCases := []struct {
		name string
		tx   coinfolio.Transaction
		want string
	}{
		{"buy", coinfolio.NewBuy(at, "BTC", coinfolio.Q(1.5)), "Bought 1.5 BTC"},
		{"sell", coinfolio.NewSell(at, "ETH", coinfolio.Q(2.0)), "Sold 2 ETH"},
		{"trade", coinfolio.NewTrade(at, "ETH", coinfolio.Q(1.0), "BTC", coinfolio.Q(0.05)), "Traded 0.05 BTC for 1 ETH"},
		{"init", coinfolio.NewInit(at, map[string]coinfolio.Quantity{"BTC": coinfolio.Q(1.0)}), "Initialized portfolio with 1 symbols"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Transaction(tc.tx); got != tc.want {
				t.Errorf("Transaction() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBreakdownMarkdown(t *testing.T) {
	rows := []coinfolio.BreakdownRow{
		{Symbol: "BTC", Amount: coinfolio.Q(1.0), Price: coinfolio.M(20000), Value: coinfolio.M(20000), Portion: 100},
		{Symbol: "DOGE", Amount: coinfolio.Q(1000.0), Unpriced: true},
	}
	got := BreakdownMarkdown("alice", rows)

	for _, want := range []string{
		"# Breakdown for alice",
		"| BTC",
		"100.00%",
		"no data",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BreakdownMarkdown() misses %q:\n%s", want, got)
		}
	}
}

func TestAssetTableMarkdown_DayChangeAnchoredAtInstant(t *testing.T) {
	day := int64(24 * 60 * 60)
	market := coinfolio.NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(day), 100)
	market.Ingest("BTC", timeline.Unix(2*day), 110)
	market.Ingest("BTC", timeline.Unix(10*day), 220)

	rows := []coinfolio.BreakdownRow{
		{Symbol: "BTC", Amount: coinfolio.Q(1.0), Price: coinfolio.M(110), Value: coinfolio.M(110), Portion: 100},
	}
	got := AssetTableMarkdown("alice", timeline.Unix(2*day), rows, market)
	if !strings.Contains(got, "+10.00%") {
		t.Errorf("AssetTableMarkdown() misses the 24h move of the requested instant:\n%s", got)
	}
	// The move of the latest sample belongs to another day entirely.
	if strings.Contains(got, "+100.00%") {
		t.Errorf("AssetTableMarkdown() shows the latest 24h move for a historical table:\n%s", got)
	}
}

func TestBreakdownMarkdown_Empty(t *testing.T) {
	got := BreakdownMarkdown("alice", nil)
	if !strings.Contains(got, "No holdings.") {
		t.Errorf("BreakdownMarkdown() without rows should degrade gracefully:\n%s", got)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	ledger := coinfolio.NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]coinfolio.Quantity{"BTC": coinfolio.Q(1.0)}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	got := HoldingsMarkdown("alice", ledger.HoldingsAt(timeline.Unix(2000)))
	for _, want := range []string{"# Holdings of alice", "| BTC", "| 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("HoldingsMarkdown() misses %q:\n%s", want, got)
		}
	}
}

func TestValueMarkdown(t *testing.T) {
	got := ValueMarkdown("alice", timeline.Unix(1000), coinfolio.M(20000))
	if !strings.Contains(got, "$20,000.00") {
		t.Errorf("ValueMarkdown() misses the formatted value:\n%s", got)
	}
}

func TestChangeMarkdown(t *testing.T) {
	change := coinfolio.Change{Old: coinfolio.M(20000), New: coinfolio.M(21000)}
	got := ChangeMarkdown("alice", timeline.Unix(1000), timeline.Unix(2000), change)
	if !strings.Contains(got, "+5.00%") {
		t.Errorf("ChangeMarkdown() misses the percent change:\n%s", got)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	points := []coinfolio.HistoryPoint{
		{At: timeline.Unix(1000), Value: coinfolio.M(10000)},
		{At: timeline.Unix(2000), Value: coinfolio.M(12000)},
	}
	got := HistoryMarkdown("alice", points)
	for _, want := range []string{"# Value history for alice", "$10,000.00", "$12,000.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("HistoryMarkdown() misses %q:\n%s", want, got)
		}
	}
}
