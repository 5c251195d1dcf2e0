package coinfolio

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/etnz/coinfolio/timeline"
)

// DefaultFeedURL is the public ticker endpoint quotes are fetched from
// when no other feed is configured. It answers a JSON array of objects
// carrying at least "symbol" and "price_usd".
const DefaultFeedURL = "https://api.coinmarketcap.com/v1/ticker/?limit=0"

// DefaultTrackInterval is how often the background tracker polls the
// feed.
const DefaultTrackInterval = 300 * time.Second

// Quote is one live USD price observed on a feed.
type Quote struct {
	Symbol string
	Price  float64
}

/*
	[
	    {
	        "id": "bitcoin",
	        "name": "Bitcoin",
	        "symbol": "BTC",
	        "price_usd": "19024.7",
	        ...
	    },
*/
func FetchQuotes(client *http.Client, addr string) ([]Quote, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", addr, err)
	}

	symbols, err := jsonpath.Get("$[*].symbol", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed: %q %w", "$[*].symbol", err)
	}
	prices, err := jsonpath.Get("$[*].price_usd", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed: %q %w", "$[*].price_usd", err)
	}
	jsyms, ok := symbols.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing feed: symbols is not a list")
	}
	jprices, ok := prices.([]any)
	if !ok || len(jprices) != len(jsyms) {
		return nil, fmt.Errorf("error parsing feed: got %d symbols for %d prices", len(jsyms), len(jprices))
	}

	quotes := make([]Quote, 0, len(jsyms))
	for i, jsym := range jsyms {
		sym, ok := jsym.(string)
		if !ok || sym == "" {
			continue
		}
		price, err := asFloat(jprices[i])
		if err != nil {
			// Feeds list dead coins with a null price, skip those.
			continue
		}
		quotes = append(quotes, Quote{Symbol: Symbol(sym), Price: price})
	}
	return quotes, nil
}

// asFloat reads a feed value that is sometimes a JSON number and
// sometimes a formatted string like "19,024.7".
func asFloat(jval any) (float64, error) {
	if val, ok := jval.(float64); ok {
		return val, nil
	}
	sval, ok := jval.(string)
	if !ok {
		return 0, fmt.Errorf("value %v is neither a float nor a string", jval)
	}
	sval = strings.ReplaceAll(sval, ",", "")
	sval = strings.TrimSpace(sval)
	val, err := strconv.ParseFloat(sval, 64)
	if err != nil {
		return 0, fmt.Errorf("value is an invalid string %q: %w", sval, err)
	}
	return val, nil
}

// histodayURL answers the last n daily closes of a symbol in USD.
const histodayURL = "https://min-api.cryptocompare.com/data/v2/histoday?fsym=%s&tsym=USD&limit=%d"

// FetchDailyHistory retrieves up to days daily closing prices of a
// symbol, oldest first. Responses are served through the daily disk
// cache since closed days never change.
func FetchDailyHistory(symbol string, days int) ([]PricePoint, error) {
	sym := Symbol(symbol)
	addr := fmt.Sprintf(histodayURL, sym, days)

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", sym, err)
	}
	times, err := jsonpath.Get("$.Data.Data[*].time", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q history: %q %w", sym, "$.Data.Data[*].time", err)
	}
	closes, err := jsonpath.Get("$.Data.Data[*].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q history: %q %w", sym, "$.Data.Data[*].close", err)
	}
	jtimes, ok := times.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q history: times is not a list", sym)
	}
	jcloses, ok := closes.([]any)
	if !ok || len(jcloses) != len(jtimes) {
		return nil, fmt.Errorf("error parsing %q history: got %d times for %d closes", sym, len(jtimes), len(jcloses))
	}

	points := make([]PricePoint, 0, len(jtimes))
	for i, jtime := range jtimes {
		sec, err := asFloat(jtime)
		if err != nil {
			return nil, fmt.Errorf("error parsing %q history: %w", sym, err)
		}
		price, err := asFloat(jcloses[i])
		if err != nil || price == 0 {
			// Days before the coin existed are listed with a 0 close.
			continue
		}
		points = append(points, PricePoint{Symbol: sym, At: timeline.Unix(int64(sec)), Price: price})
	}
	return points, nil
}

// Tracker polls a quote feed and records every observed price into a
// Repository.
type Tracker struct {
	Repo *Repository
	// URL of the feed, DefaultFeedURL when empty.
	URL string
	// Client used for polling, a plain http.Client when nil. Quotes
	// move intraday so the daily disk cache is never used here.
	Client *http.Client
	// Interval between polls, DefaultTrackInterval when zero.
	Interval time.Duration
}

// Poll fetches the feed once and records every quote. It returns the
// number of prices recorded.
func (t *Tracker) Poll() (int, error) {
	addr := t.URL
	if addr == "" {
		addr = DefaultFeedURL
	}
	client := t.Client
	if client == nil {
		client = new(http.Client)
	}
	quotes, err := FetchQuotes(client, addr)
	if err != nil {
		return 0, err
	}
	now := timeline.Now()
	n := 0
	for _, q := range quotes {
		if err := t.Repo.Ingest(q.Symbol, now, q.Price); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Run polls the feed until ctx is canceled. A failing poll is logged
// and retried at the next tick, the tracker never gives up on its own.
func (t *Tracker) Run(ctx context.Context) error {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultTrackInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if n, err := t.Poll(); err != nil {
			log.Printf("price poll failed (will retry): %v", err)
		} else {
			log.Printf("recorded %d prices", n)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
