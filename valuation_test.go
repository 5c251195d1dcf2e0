package coinfolio

import (
	"math"
	"testing"
	"time"

	"github.com/etnz/coinfolio/timeline"
)

func TestValuation_ValueAt(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]Quantity{"BTC": Q(1.0)}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	market := NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(1000), 20000)

	v := NewValuation(ledger, market)
	if got := v.ValueAt(timeline.Unix(1000)); got.String() != "$20,000.00" {
		t.Errorf("ValueAt(1000) = %s, want $20,000.00", got)
	}
}

func TestValuation_UnpricedContributesNothing(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]Quantity{
		"BTC":  Q(1.0),
		"DOGE": Q(1000.0),
	}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	market := NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(1000), 20000)

	v := NewValuation(ledger, market)
	if got := v.ValueAt(timeline.Unix(1000)); got.AsFloat() != 20000 {
		t.Errorf("ValueAt() with an unpriced symbol = %s, want $20,000.00", got)
	}

	rows := v.BreakdownAt(timeline.Unix(1000))
	if len(rows) != 2 {
		t.Fatalf("BreakdownAt() returned %d rows, want 2", len(rows))
	}
	if rows[0].Symbol != "BTC" || rows[0].Unpriced {
		t.Errorf("first row = %+v, want priced BTC", rows[0])
	}
	if rows[1].Symbol != "DOGE" || !rows[1].Unpriced {
		t.Errorf("second row = %+v, want unpriced DOGE", rows[1])
	}
	if rows[1].Portion != 0 || !rows[1].Value.IsZero() {
		t.Errorf("unpriced row should contribute nothing, got %+v", rows[1])
	}
}

func TestValuation_Breakdown(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]Quantity{
		"BTC": Q(1.0),
		"ETH": Q(10.0),
	}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	market := NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(1000), 15000)
	market.Ingest("ETH", timeline.Unix(1000), 4500)

	rows := NewValuation(ledger, market).BreakdownAt(timeline.Unix(1000))
	// ETH is worth 45000, BTC 15000: biggest position first.
	if rows[0].Symbol != "ETH" || rows[1].Symbol != "BTC" {
		t.Fatalf("rows sorted %s, %s, want ETH, BTC", rows[0].Symbol, rows[1].Symbol)
	}
	if math.Abs(rows[0].Portion-75.0) > 1e-9 {
		t.Errorf("ETH portion = %v%%, want 75%%", rows[0].Portion)
	}
	if math.Abs(rows[1].Portion-25.0) > 1e-9 {
		t.Errorf("BTC portion = %v%%, want 25%%", rows[1].Portion)
	}
}

func TestValuation_Change(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]Quantity{"BTC": Q(1.0)}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	market := NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(1000), 20000)
	market.Ingest("BTC", timeline.Unix(2000), 21000)

	v := NewValuation(ledger, market)
	change := v.ChangeBetween(timeline.Unix(1000), timeline.Unix(2000))
	if got := change.String(); got != "+5.00%" {
		t.Errorf("ChangeBetween() = %q, want %q", got, "+5.00%")
	}
	if got := change.Diff().AsFloat(); got != 1000 {
		t.Errorf("Diff() = %v, want 1000", got)
	}

	window := time.Duration(1000) * time.Second
	if got := v.ChangeOver(window, timeline.Unix(2000)).String(); got != "+5.00%" {
		t.Errorf("ChangeOver() = %q, want %q", got, "+5.00%")
	}
}

func TestChange_SpecialCases(t *testing.T) {
	testCases := []struct {
		name string
		c    Change
		want string
	}{
		{"no change from nothing", Change{}, "No change"},
		{"growth from nothing", Change{New: M(100)}, "+Inf%"},
		{"loss from nothing", Change{New: M(-100)}, "-Inf%"},
		{"regular gain", Change{Old: M(100), New: M(110)}, "+10.00%"},
		{"regular loss", Change{Old: M(100), New: M(90)}, "-10.00%"},
		{"flat", Change{Old: M(100), New: M(100)}, "+0.00%"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValuation_History(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Init(timeline.Unix(1000), map[string]Quantity{"BTC": Q(1.0)}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	market := NewPriceHistory()
	market.Ingest("BTC", timeline.Unix(1000), 10000)
	market.Ingest("BTC", timeline.Unix(1100), 11000)
	market.Ingest("BTC", timeline.Unix(1200), 12000)

	points := NewValuation(ledger, market).History(timeline.Unix(1000), timeline.Unix(1200), 100*time.Second)
	if len(points) != 3 {
		t.Fatalf("History() returned %d points, want 3", len(points))
	}
	want := []float64{10000, 11000, 12000}
	for i, p := range points {
		if got := p.Value.AsFloat(); got != want[i] {
			t.Errorf("History()[%d] = %v, want %v", i, got, want[i])
		}
	}
}
