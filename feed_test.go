package coinfolio

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/coinfolio/timeline"
)

const tickerResponse = `[
  {"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC", "price_usd": "19024.7"},
  {"id": "ethereum", "name": "Ethereum", "symbol": "eth", "price_usd": "1,520.35"},
  {"id": "deadcoin", "name": "Deadcoin", "symbol": "DEAD", "price_usd": null},
  {"id": "numeric", "name": "Numeric", "symbol": "NUM", "price_usd": 0.42}
]`

func TestFetchQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tickerResponse))
	}))
	defer server.Close()

	quotes, err := FetchQuotes(server.Client(), server.URL)
	if err != nil {
		t.Fatalf("FetchQuotes() returned an unexpected error: %v", err)
	}

	want := []Quote{
		{Symbol: "BTC", Price: 19024.7},
		{Symbol: "ETH", Price: 1520.35}, // comma grouping and lowercase handled
		{Symbol: "NUM", Price: 0.42},    // numbers work as well as strings
	}
	if len(quotes) != len(want) {
		t.Fatalf("FetchQuotes() returned %d quotes, want %d: %v", len(quotes), len(want), quotes)
	}
	for i := range want {
		if quotes[i] != want[i] {
			t.Errorf("quote %d = %v, want %v", i, quotes[i], want[i])
		}
	}
}

func TestFetchQuotes_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := FetchQuotes(server.Client(), server.URL); err == nil {
		t.Fatal("FetchQuotes() should report a non-200 answer")
	}
}

func TestTracker_Poll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tickerResponse))
	}))
	defer server.Close()

	repo, _ := newTestRepository(t)
	tracker := &Tracker{Repo: repo, URL: server.URL, Client: server.Client()}

	n, err := tracker.Poll()
	if err != nil {
		t.Fatalf("Poll() returned an unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Poll() recorded %d prices, want 3", n)
	}
	if price, ok := repo.Market().PriceAt("BTC", timeline.Now()); !ok || price != 19024.7 {
		t.Errorf("PriceAt(BTC) after poll = %v, %v, want 19024.7, true", price, ok)
	}
}

func TestAsFloat(t *testing.T) {
	testCases := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{"plain float", 19024.7, 19024.7, false},
		{"plain string", "19024.7", 19024.7, false},
		{"comma grouping", "19,024.7", 19024.7, false},
		{"null value", nil, 0, true},
		{"garbage string", "./.", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := asFloat(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("asFloat(%v) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("asFloat(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
