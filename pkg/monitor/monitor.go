// Package monitor watches feeds for keywords and drafts replies to matching entries.
// Drafts are submitted to the review queue, nothing is published from here.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/llm"
)

//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/seen_store.go -pkg mocks -skip-ensure -fmt goimports . SeenStore
//go:generate moq -out mocks/submitter.go -pkg mocks -skip-ensure -fmt goimports . Submitter

const maxTitleLen = 200

// Parser fetches a feed
type Parser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor fetches readable page text
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// Generator drafts a reply
type Generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// SeenStore remembers processed entries
type SeenStore interface {
	MarkSeen(ctx context.Context, source, guid string) (bool, error)
}

// Submitter accepts drafts for review
type Submitter interface {
	Submit(ctx context.Context, d domain.Draft) (*domain.ContentItem, error)
}

// Params defines monitor parameters
type Params struct {
	Sources    []domain.Source
	Parser     Parser
	Extractor  Extractor // nil disables page extraction
	Generator  Generator
	Seen       SeenStore
	Queue      Submitter
	MaxWorkers int
}

// Monitor checks sources and drafts replies
type Monitor struct {
	Params
}

// Report summarizes a monitor run
type Report struct {
	Sources int `json:"sources"`
	Failed  int `json:"failed_sources"`
	Entries int `json:"entries"`
	Matched int `json:"matched"`
	Drafted int `json:"drafted"`
	Skipped int `json:"skipped"`
}

// New makes monitor
func New(params Params) *Monitor {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 5
	}
	return &Monitor{Params: params}
}

// Run checks all sources concurrently. A failing source doesn't stop others,
// the returned error reports failed sources after all of them are processed.
func (m *Monitor) Run(ctx context.Context) (Report, error) {
	var mu sync.Mutex
	report := Report{Sources: len(m.Sources)}

	g := errgroup.Group{}
	g.SetLimit(m.MaxWorkers)
	for _, src := range m.Sources {
		g.Go(func() error {
			res, err := m.checkSource(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] failed to check source %s: %v", src.URL, err)
				report.Failed++
				return nil
			}
			report.Entries += res.Entries
			report.Matched += res.Matched
			report.Drafted += res.Drafted
			report.Skipped += res.Skipped
			return nil
		})
	}
	_ = g.Wait()

	lgr.Printf("[INFO] monitor checked %d sources, %d entries, %d matched, %d drafted",
		report.Sources, report.Entries, report.Matched, report.Drafted)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if report.Failed > 0 {
		return report, fmt.Errorf("%d of %d sources failed", report.Failed, report.Sources)
	}
	return report, nil
}

func (m *Monitor) checkSource(ctx context.Context, src domain.Source) (Report, error) {
	feed, err := m.Parser.Parse(ctx, src.URL)
	if err != nil {
		return Report{}, fmt.Errorf("parse feed: %w", err)
	}

	res := Report{Entries: len(feed.Items)}
	for _, entry := range feed.Items {
		if ctx.Err() != nil {
			return res, nil
		}
		keywords := matchKeywords(entry, src.Keywords)
		if len(keywords) == 0 {
			continue
		}
		res.Matched++

		isNew, err := m.Seen.MarkSeen(ctx, src.URL, entry.GUID)
		if err != nil {
			return res, fmt.Errorf("mark %s seen: %w", entry.GUID, err)
		}
		if !isNew {
			res.Skipped++
			continue
		}

		if err := m.draft(ctx, src, entry, keywords); err != nil {
			lgr.Printf("[WARN] skip entry %q from %s: %v", entry.Title, src.URL, err)
			res.Skipped++
			continue
		}
		res.Drafted++
	}
	return res, nil
}

func (m *Monitor) draft(ctx context.Context, src domain.Source, entry domain.ParsedItem, keywords []string) error {
	req := llm.Request{Entry: entry, Platform: src.Platform, Channel: src.Channel, Keywords: keywords}
	if m.Extractor != nil && entry.Link != "" {
		text, err := m.Extractor.Extract(ctx, entry.Link)
		if err != nil {
			lgr.Printf("[DEBUG] extraction failed for %s, using feed text: %v", entry.Link, err)
		}
		req.Extracted = text
	}
	if req.Extracted == "" {
		req.Extracted = entry.Content
	}

	body, err := m.Generator.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}

	item, err := m.Queue.Submit(ctx, domain.Draft{
		Platform:        src.Platform,
		AccountScope:    src.Account,
		Channel:         src.Channel,
		Flair:           src.Flair,
		NoSelfPromotion: src.NoSelfPromotion,
		Title:           replyTitle(entry.Title),
		Body:            body,
		SourceRef:       entry.Link,
	})
	if err != nil {
		return fmt.Errorf("submit draft: %w", err)
	}
	lgr.Printf("[INFO] drafted item %d for %q (%s), keywords %v", item.ID, entry.Title, src.Platform, keywords)
	return nil
}

// matchKeywords returns keywords found in entry title or description, case-insensitive
func matchKeywords(entry domain.ParsedItem, keywords []string) []string {
	text := strings.ToLower(entry.Title + "\n" + entry.Description)
	var res []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			res = append(res, kw)
		}
	}
	return res
}

func replyTitle(title string) string {
	title = "Re: " + strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen-1]) + "…"
	}
	return title
}
