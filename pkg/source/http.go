package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dd0wney/convograph/pkg/graph"
)

// AccessKeyHeader carries the store's access key
const AccessKeyHeader = "X-Access-Key"

// maxErrorBody bounds the response body kept on a StatusError
const maxErrorBody = 512

// HTTP fetches the graph from a JSON bin style endpoint
type HTTP struct {
	URL       string
	AccessKey string
	Envelope  string
	Client    *http.Client
}

// NewHTTP creates an HTTP source. A zero timeout leaves the client unbounded.
func NewHTTP(url, accessKey string, timeout time.Duration) *HTTP {
	return &HTTP{
		URL:       url,
		AccessKey: accessKey,
		Envelope:  DefaultEnvelope,
		Client:    &http.Client{Timeout: timeout},
	}
}

// Fetch issues one GET and decodes the response
func (h *HTTP) Fetch(ctx context.Context) (*graph.Data, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.AccessKey != "" {
		req.Header.Set(AccessKeyHeader, h.AccessKey)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusErr(resp.StatusCode, truncate(strings.TrimSpace(string(body)), maxErrorBody))
	}

	return Decode(body, h.Envelope)
}

// truncate cuts s to at most n bytes on a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
