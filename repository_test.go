package coinfolio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/etnz/coinfolio/timeline"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore() returned an unexpected error: %v", err)
	}
	repo, err := NewRepository(store)
	if err != nil {
		t.Fatalf("NewRepository() returned an unexpected error: %v", err)
	}
	return repo, dir
}

func TestRepository_PersistsAcrossReloads(t *testing.T) {
	repo, dir := newTestRepository(t)
	if _, err := repo.Init("alice", timeline.Unix(1000), map[string]Quantity{"BTC": Q(1.0)}); err != nil {
		t.Fatalf("Init() returned an unexpected error: %v", err)
	}
	if _, err := repo.Buy("alice", timeline.Unix(2000), "ETH", Q(2.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	if err := repo.Ingest("BTC", timeline.Unix(1000), 20000); err != nil {
		t.Fatalf("Ingest() returned an unexpected error: %v", err)
	}

	// A fresh repository over the same directory sees it all.
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore() returned an unexpected error: %v", err)
	}
	reloaded, err := NewRepository(store)
	if err != nil {
		t.Fatalf("NewRepository() returned an unexpected error: %v", err)
	}

	snapshot, err := reloaded.HoldingsAt("alice", timeline.Unix(2500))
	if err != nil {
		t.Fatalf("HoldingsAt() returned an unexpected error: %v", err)
	}
	if snapshot.Len() != 2 || !snapshot.Amount("BTC").Equal(Q(1.0)) || !snapshot.Amount("ETH").Equal(Q(2.0)) {
		t.Errorf("reloaded holdings = %s, want {BTC:1 ETH:2}", snapshot)
	}
	if price, ok := reloaded.Market().PriceAt("BTC", timeline.Unix(1500)); !ok || price != 20000 {
		t.Errorf("reloaded PriceAt(BTC) = %v, %v, want 20000, true", price, ok)
	}
}

func TestRepository_RejectedMutationIsNotPersisted(t *testing.T) {
	repo, dir := newTestRepository(t)
	if _, err := repo.Buy("alice", timeline.Unix(1000), "BTC", Q(1.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	if _, err := repo.Sell("alice", timeline.Unix(2000), "BTC", Q(5.0)); err == nil {
		t.Fatal("overdrawing Sell() should have been rejected")
	}

	data, err := os.ReadFile(filepath.Join(dir, "ledgers", "alice.jsonl"))
	if err != nil {
		t.Fatalf("could not read ledger file: %v", err)
	}
	if got := countLines(data); got != 1 {
		t.Errorf("ledger file holds %d lines after a rejected mutation, want 1", got)
	}
}

func TestRepository_UsersAreIndependent(t *testing.T) {
	repo, _ := newTestRepository(t)
	if _, err := repo.Buy("alice", timeline.Unix(1000), "BTC", Q(1.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	if _, err := repo.Buy("bob", timeline.Unix(1000), "ETH", Q(2.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}

	snapshot, err := repo.HoldingsAt("alice", timeline.Unix(2000))
	if err != nil {
		t.Fatalf("HoldingsAt() returned an unexpected error: %v", err)
	}
	if snapshot.Has("ETH") {
		t.Errorf("alice's holdings include bob's ETH: %s", snapshot)
	}

	users, err := repo.Users()
	if err != nil {
		t.Fatalf("Users() returned an unexpected error: %v", err)
	}
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Errorf("Users() = %v, want [alice bob]", users)
	}
}

func TestRepository_Clear(t *testing.T) {
	repo, dir := newTestRepository(t)
	if _, err := repo.Buy("alice", timeline.Unix(1000), "BTC", Q(1.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	if err := repo.Clear("alice"); err != nil {
		t.Fatalf("Clear() returned an unexpected error: %v", err)
	}

	snapshot, err := repo.HoldingsAt("alice", timeline.Unix(2000))
	if err != nil {
		t.Fatalf("HoldingsAt() returned an unexpected error: %v", err)
	}
	if snapshot.Len() != 0 {
		t.Errorf("holdings after Clear() = %s, want empty", snapshot)
	}
	if _, err := os.Stat(filepath.Join(dir, "ledgers", "alice.jsonl")); !os.IsNotExist(err) {
		t.Errorf("ledger file still exists after Clear(): %v", err)
	}
}

func TestRepository_ValuationIsFrozenAtCall(t *testing.T) {
	repo, _ := newTestRepository(t)
	if _, err := repo.Buy("alice", timeline.Unix(1000), "BTC", Q(1.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}
	if err := repo.Ingest("BTC", timeline.Unix(1000), 100); err != nil {
		t.Fatalf("Ingest() returned an unexpected error: %v", err)
	}

	v, err := repo.Valuation("alice")
	if err != nil {
		t.Fatalf("Valuation() returned an unexpected error: %v", err)
	}
	// A mutation after the engine was taken must not leak into it.
	if _, err := repo.Buy("alice", timeline.Unix(2000), "BTC", Q(1.0)); err != nil {
		t.Fatalf("Buy() returned an unexpected error: %v", err)
	}

	if got := v.ValueAt(timeline.Unix(3000)).AsFloat(); got != 100 {
		t.Errorf("ValueAt() on a frozen engine = %v, want 100", got)
	}
	fresh, err := repo.Valuation("alice")
	if err != nil {
		t.Fatalf("Valuation() returned an unexpected error: %v", err)
	}
	if got := fresh.ValueAt(timeline.Unix(3000)).AsFloat(); got != 200 {
		t.Errorf("ValueAt() on a fresh engine = %v, want 200", got)
	}
}

func TestRepository_ConcurrentMutationsAndValuations(t *testing.T) {
	repo, _ := newTestRepository(t)
	if err := repo.Ingest("BTC", timeline.Unix(0), 100); err != nil {
		t.Fatalf("Ingest() returned an unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if _, err := repo.Buy("alice", timeline.Unix(int64(1000*i+j)), "BTC", Q(1.0)); err != nil {
					t.Errorf("Buy() returned an unexpected error: %v", err)
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				v, err := repo.Valuation("alice")
				if err != nil {
					t.Errorf("Valuation() returned an unexpected error: %v", err)
					return
				}
				v.ValueAt(timeline.Unix(5000))
			}
		}()
	}
	wg.Wait()
}

func TestRepository_UnknownUserIsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t)
	snapshot, err := repo.HoldingsAt("nobody", timeline.Unix(1000))
	if err != nil {
		t.Fatalf("HoldingsAt() for an unknown user returned an unexpected error: %v", err)
	}
	if snapshot.Len() != 0 {
		t.Errorf("unknown user's holdings = %s, want empty", snapshot)
	}
}

func countLines(data []byte) int {
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}
