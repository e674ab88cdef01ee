// Package docs fetches the MCP reference documentation served to agents as
// the llmcontext://mcpdocs resource. Content is passed through verbatim and
// fetched fresh on every call.
package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tool-alchemist/alchemist/internal/log"
)

// ResourceURI identifies the documentation resource.
const ResourceURI = "llmcontext://mcpdocs"

// UserAgent is sent with every request.
const UserAgent = "tool-alchemist/0.1.0"

// maxBodySize caps how much documentation is read into memory.
const maxBodySize = 16 << 20

// Fetcher retrieves documentation over HTTP.
type Fetcher struct {
	URL    string
	Client *http.Client
}

// NewFetcher creates a Fetcher with a 10 second timeout.
func NewFetcher(url string) *Fetcher {
	return &Fetcher{
		URL: url,
		Client: &http.Client{
			Timeout: 10 * time.Second, // Add a timeout to prevent hanging indefinitely
		},
	}
}

// Fetch downloads the documentation and returns it unchanged.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", f.URL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	log.Debug("Fetching documentation from %s", f.URL)
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch from %s: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch from %s: received status code %d", f.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body from %s: %w", f.URL, err)
	}
	if len(body) > maxBodySize {
		return "", fmt.Errorf("documentation at %s exceeds %d bytes", f.URL, maxBodySize)
	}
	return string(body), nil
}
