// Package content extracts readable text of pages linked from monitored feeds.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
)

const maxPageSize = 5 * 1024 * 1024

// Params defines extractor parameters
type Params struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int // shorter text is treated as extraction failure
}

// HTTPExtractor extracts page text from URLs using trafilatura
type HTTPExtractor struct {
	Params
	client *http.Client
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(params Params) *HTTPExtractor {
	if params.UserAgent == "" {
		params.UserAgent = "Mozilla/5.0 (compatible; Postguard/1.0)"
	}
	return &HTTPExtractor{Params: params, client: &http.Client{Timeout: params.Timeout}}
}

// Extract retrieves and extracts text content from the given URL
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}

	result, err := trafilatura.Extract(io.LimitReader(resp.Body, maxPageSize), opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	if n := utf8.RuneCountInString(text); n < e.MinTextLength {
		return "", fmt.Errorf("extracted text from %s is too short: %d < %d", urlStr, n, e.MinTextLength)
	}
	return text, nil
}
