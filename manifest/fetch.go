package manifest

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dawnengine/yage2/dawnerr"
)

// Fetcher retrieves an entry's raw body. Callers own the returned
// ReadCloser and must Close it.
type Fetcher interface {
	Fetch(e Entry) (io.ReadCloser, error)
}

// DefaultFetcher reads file-backed sources with os.Open and URL-backed
// sources with an http.Client, applying Timeout to the request.
type DefaultFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewDefaultFetcher returns a DefaultFetcher with a 30 second request
// timeout and http.DefaultClient.
func NewDefaultFetcher() *DefaultFetcher {
	return &DefaultFetcher{Client: http.DefaultClient, Timeout: 30 * time.Second}
}

// Fetch opens e's file, or issues a GET against e's URL.
func (f *DefaultFetcher) Fetch(e Entry) (io.ReadCloser, error) {
	if e.Source.IsURL() {
		return f.fetchURL(e.Source.URL)
	}
	file, err := os.Open(e.Source.Path)
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "manifest.DefaultFetcher.Fetch", err)
	}
	return file, nil
}

func (f *DefaultFetcher) fetchURL(url string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	if f.Timeout > 0 {
		timed := *client
		timed.Timeout = f.Timeout
		client = &timed
	}
	resp, err := client.Get(url)
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "manifest.DefaultFetcher.Fetch", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, dawnerr.New(dawnerr.IO, "manifest.DefaultFetcher.Fetch",
			fmt.Errorf("%s: unexpected status %s", url, resp.Status))
	}
	return resp.Body, nil
}
