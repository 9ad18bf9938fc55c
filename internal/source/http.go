package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultURL is the public endpoint the first-run import reads from.
const DefaultURL = "https://dummyjson.com/todos"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// HTTPConfig holds configuration for the HTTP source.
type HTTPConfig struct {
	// URL of the task list (default: DefaultURL)
	URL string

	// Timeout for the whole request (default: 30s)
	Timeout time.Duration

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// HTTPSource fetches the list with a GET request.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTP source, filling in defaults.
func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	u := cfg.URL
	if u == "" {
		u = DefaultURL
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPSource{url: u, client: client}
}

// URL returns the endpoint this source reads.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (*RawImportList, error) {
	parsed, err := url.Parse(s.url)
	if err != nil {
		return nil, newError(KindURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, newError(KindURL, fmt.Errorf("unsupported address %q", s.url))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, newError(KindURL, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, newError(KindServer, fmt.Errorf("HTTP request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &Error{Kind: KindResponse, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newError(KindData, fmt.Errorf("read body: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, newError(KindData, nil)
	}

	var list RawImportList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, newError(KindParsing, fmt.Errorf("decode response: %w", err))
	}
	return &list, nil
}
