// Package feed fetches RSS and Atom feeds watched by the keyword monitor.
package feed

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/postguard/pkg/domain"
)

// Parser parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
	strip     *bluemonday.Policy
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = "Postguard/1.0"
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		strip:     bluemonday.StrictPolicy(),
	}
}

// Parse fetches and parses a feed from the given URL.
// Description and content are returned as plain text, markup is stripped.
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status code: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: p.text(feed.Description),
		Link:        feed.Link,
		Items:       make([]domain.ParsedItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		parsed := domain.ParsedItem{
			GUID:        item.GUID,
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Description: p.text(item.Description),
			Content:     p.text(item.Content),
		}

		// entries without guid are keyed by link, then by feed and entry titles
		if parsed.GUID == "" {
			parsed.GUID = item.Link
		}
		if parsed.GUID == "" {
			parsed.GUID = fmt.Sprintf("%s-%s", feed.Title, item.Title)
		}

		if item.Author != nil {
			parsed.Author = item.Author.Name
		}

		switch {
		case item.PublishedParsed != nil:
			parsed.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			parsed.Published = *item.UpdatedParsed
		}

		result.Items = append(result.Items, parsed)
	}

	return result, nil
}

// text strips markup and entities, collapsing whitespace
func (p *Parser) text(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(p.strip.Sanitize(s))), " ")
}
