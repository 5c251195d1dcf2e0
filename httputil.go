package coinfolio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// diskCache is an http.RoundTripper caching successful responses on
// disk for the rest of the day. Historical price endpoints answer the
// same thing all day long, so repeated backfills cost one request.
type diskCache struct {
	base http.RoundTripper
	dir  string // cache directory, os.TempDir() when empty
}

// path returns the cache file for a request. The key carries the day,
// so every entry expires at midnight.
func (c *diskCache) path(req *http.Request) string {
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("%x", sha1.Sum([]byte(key))))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	file := c.path(req)
	if resp, err := c.get(file, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		// Errors are not worth remembering for a day.
		return resp, nil
	}
	if err := c.put(file, resp); err != nil {
		log.Printf("cache write failed (ignored): %v", err)
	}
	return resp, nil
}

// get reads a cached response from disk.
func (c *diskCache) get(file string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores a response on disk. DumpResponse leaves the body readable
// for the caller.
func (c *diskCache) put(file string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Errorf("could not dump response: %w", err)
	}
	return os.WriteFile(file, content, 0644)
}

// daily returns a client with a disk cache expiring every day, for
// historical price endpoints whose answers do not move intraday. Live
// quotes use a plain client instead.
func daily() *http.Client {
	return &http.Client{Transport: &diskCache{base: http.DefaultTransport}}
}

// jwget performs an HTTP GET and unmarshals the JSON answer into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response of %q: %w", addr, err)
	}
	return json.Unmarshal(body, data)
}
