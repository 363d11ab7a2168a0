package language

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source supplies the raw ISO 639-3 reference table. Implementations exist for
// the canonical registry URL and for in-memory fixtures so tests stay offline.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// DefaultTableURL is the canonical SIL ISO 639-3 code table.
const DefaultTableURL = "https://iso639-3.sil.org/sites/iso639-3/files/downloads/iso-639-3.tab"

// URLSource fetches the reference table over HTTP.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (s URLSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	url := s.URL
	if url == "" {
		url = DefaultTableURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build language table request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch language table: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch language table: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// StaticSource serves an in-memory table. Used by tests and offline
// deployments that embed the reference data.
type StaticSource []byte

func (s StaticSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s)), nil
}
