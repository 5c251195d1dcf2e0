package coinfolio

import (
	"testing"

	"github.com/etnz/coinfolio/timeline"
)

func TestSymbol_Normalization(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"btc", "BTC"},
		{" eth ", "ETH"},
		{"DOGE", "DOGE"},
	}
	for _, tc := range testCases {
		if got := Symbol(tc.in); got != tc.want {
			t.Errorf("Symbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewBuy_NormalizesSymbol(t *testing.T) {
	tx := NewBuy(timeline.Unix(1000), "btc", Q(1.0))
	if tx.InSymbol != "BTC" {
		t.Errorf("NewBuy symbol = %q, want %q", tx.InSymbol, "BTC")
	}
	if tx.What() != CmdBuy {
		t.Errorf("NewBuy command = %q, want %q", tx.What(), CmdBuy)
	}
}

func TestNew_DefaultsToNow(t *testing.T) {
	before := timeline.Now()
	tx := NewSell(0, "BTC", Q(1.0))
	after := timeline.Now()
	if tx.When().Before(before) || tx.When().After(after) {
		t.Errorf("NewSell with zero instant dated %d, want between %d and %d", tx.When(), before, after)
	}
}

func TestTransaction_Equal(t *testing.T) {
	at := timeline.Unix(1000)
	testCases := []struct {
		name string
		a, b Transaction
		want bool
	}{
		{
			name: "identical buys",
			a:    NewBuy(at, "BTC", Q(1.0)),
			b:    NewBuy(at, "BTC", Q(1.0)),
			want: true,
		},
		{
			name: "different amounts",
			a:    NewBuy(at, "BTC", Q(1.0)),
			b:    NewBuy(at, "BTC", Q(2.0)),
			want: false,
		},
		{
			name: "buy is not a sell",
			a:    NewBuy(at, "BTC", Q(1.0)),
			b:    NewSell(at, "BTC", Q(1.0)),
			want: false,
		},
		{
			name: "identical inits",
			a:    NewInit(at, map[string]Quantity{"BTC": Q(1.0), "ETH": Q(2.0)}),
			b:    NewInit(at, map[string]Quantity{"ETH": Q(2.0), "BTC": Q(1.0)}),
			want: true,
		},
		{
			name: "inits with different holdings",
			a:    NewInit(at, map[string]Quantity{"BTC": Q(1.0)}),
			b:    NewInit(at, map[string]Quantity{"BTC": Q(1.0), "ETH": Q(2.0)}),
			want: false,
		},
		{
			name: "identical trades",
			a:    NewTrade(at, "ETH", Q(1.0), "BTC", Q(0.05)),
			b:    NewTrade(at, "ETH", Q(1.0), "BTC", Q(0.05)),
			want: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCompareTx_InitFirstAtSameInstant(t *testing.T) {
	at := timeline.Unix(1000)
	init := NewInit(at, map[string]Quantity{"BTC": Q(1.0)})
	buy := NewBuy(at, "BTC", Q(1.0))
	if compareTx(init, buy) >= 0 {
		t.Error("an init must sort before other transactions at the same instant")
	}
	if compareTx(buy, init) <= 0 {
		t.Error("a buy must sort after an init at the same instant")
	}
	if compareTx(buy, NewSell(at, "BTC", Q(1.0))) != 0 {
		t.Error("non-init transactions at the same instant must compare equal")
	}
}

func TestCompareTx_FarApartInstants(t *testing.T) {
	// Instants further apart than 2^32 seconds must still order
	// correctly, whatever the platform's int width.
	old := NewBuy(timeline.Unix(1), "BTC", Q(1.0))
	future := NewBuy(timeline.Unix(1<<40), "BTC", Q(1.0))
	if compareTx(old, future) >= 0 {
		t.Error("the older instant must sort first")
	}
	if compareTx(future, old) <= 0 {
		t.Error("the newer instant must sort last")
	}
}
