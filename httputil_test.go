package coinfolio

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiskCache_ServesRepeatsFromDisk(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"answer":42}`))
	}))
	defer server.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	for i := 0; i < 2; i++ {
		var data struct {
			Answer int `json:"answer"`
		}
		if err := jwget(client, server.URL, &data); err != nil {
			t.Fatalf("jwget() returned an unexpected error: %v", err)
		}
		if data.Answer != 42 {
			t.Errorf("jwget() decoded %d, want 42", data.Answer)
		}
	}

	if hits != 1 {
		t.Errorf("server answered %d requests, want 1 with the second served from cache", hits)
	}
}

func TestDiskCache_DoesNotCacheErrors(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	for i := 0; i < 2; i++ {
		var data any
		if err := jwget(client, server.URL, &data); err == nil {
			t.Fatal("jwget() should report a non-200 answer")
		}
	}

	if hits != 2 {
		t.Errorf("server answered %d requests, want 2 as errors must not be cached", hits)
	}
}
