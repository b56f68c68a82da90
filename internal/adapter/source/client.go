package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
)

// ErrUnexpectedStatus is returned when the upstream site answers with anything
// other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxBodyBytes bounds a single ranking page. The largest all-time lists are a
// few hundred kilobytes.
const maxBodyBytes = 16 << 20

// Client fetches ranking pages from the all-time lists site.
// It implements pipeline.Extractor.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a ranking page client rooted at baseURL.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Extract returns the raw markup of the event's ranking page.
func (c *Client) Extract(ctx context.Context, event catalog.Event) (string, error) {
	return c.Fetch(ctx, event)
}

// Fetch downloads the event's ranking page and returns it decoded to UTF-8.
// Pages are served as Latin-1.
func (c *Client) Fetch(ctx context.Context, event catalog.Event) (string, error) {
	u := event.URL(c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, u)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	body, err := Decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	c.logger.Debug("ranking page fetched", "event", event.Code, "url", u, "bytes", len(raw))
	return body, nil
}

// Decode converts a ranking page to UTF-8. The encoding comes from the
// contentType charset, then a meta tag, then a UTF-8 check on the first
// kilobyte, falling back to windows-1252.
func Decode(raw []byte, contentType string) (string, error) {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	body, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", name, err)
	}
	return string(body), nil
}
