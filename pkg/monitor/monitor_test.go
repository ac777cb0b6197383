package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/domain"
	"github.com/umputun/postguard/pkg/llm"
	"github.com/umputun/postguard/pkg/monitor/mocks"
)

var golangFeed = &domain.ParsedFeed{Title: "r/golang", Items: []domain.ParsedItem{
	{GUID: "t3_1", Title: "SQLite keeps locking", Link: "https://reddit.com/1", Description: "database is locked under load"},
	{GUID: "t3_2", Title: "Generics question", Link: "https://reddit.com/2", Description: "type parameters"},
	{GUID: "t3_3", Title: "Rate limiting APIs", Link: "https://reddit.com/3", Description: "sliding window vs token bucket",
		Content: "feed content"},
}}

type seenSet struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (s *seenSet) MarkSeen(_ context.Context, source, guid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := source + "|" + guid
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func newSubmitter() *mocks.SubmitterMock {
	var id int64
	var mu sync.Mutex
	return &mocks.SubmitterMock{SubmitFunc: func(_ context.Context, d domain.Draft) (*domain.ContentItem, error) {
		mu.Lock()
		defer mu.Unlock()
		id++
		return &domain.ContentItem{ID: id, Platform: d.Platform, Body: d.Body, Status: domain.StatusDraft}, nil
	}}
}

func TestMonitor_Run(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) { return golangFeed, nil }}
	gen := &mocks.GeneratorMock{GenerateFunc: func(_ context.Context, req llm.Request) (string, error) {
		return "reply to " + req.Entry.Title, nil
	}}
	queue := newSubmitter()
	seen := &seenSet{seen: map[string]bool{}}
	src := domain.Source{URL: "https://reddit.com/r/golang/.rss", Platform: domain.PlatformReddit, Account: "helper",
		Channel: "golang", Flair: "help", NoSelfPromotion: true, Keywords: []string{"SQLite", "rate limit"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Generator: gen, Seen: seen, Queue: queue})
	report, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Sources: 1, Entries: 3, Matched: 2, Drafted: 2}, report)

	require.Len(t, gen.GenerateCalls(), 2)
	req := gen.GenerateCalls()[0].Req
	assert.Equal(t, []string{"sqlite"}, req.Keywords)
	assert.Equal(t, domain.PlatformReddit, req.Platform)
	assert.Equal(t, "golang", req.Channel)
	assert.Empty(t, req.Extracted)
	assert.Equal(t, "feed content", gen.GenerateCalls()[1].Req.Extracted, "feed content used without extractor")

	require.Len(t, queue.SubmitCalls(), 2)
	d := queue.SubmitCalls()[0].D
	assert.Equal(t, domain.Draft{Platform: domain.PlatformReddit, AccountScope: "helper", Channel: "golang", Flair: "help",
		NoSelfPromotion: true, Title: "Re: SQLite keeps locking", Body: "reply to SQLite keeps locking", SourceRef: "https://reddit.com/1"}, d)

	// second run sees the same entries and drafts nothing
	report, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Sources: 1, Entries: 3, Matched: 2, Skipped: 2}, report)
	assert.Len(t, queue.SubmitCalls(), 2)
}

func TestMonitor_Extraction(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) { return golangFeed, nil }}
	extractor := &mocks.ExtractorMock{ExtractFunc: func(_ context.Context, url string) (string, error) {
		if url == "https://reddit.com/3" {
			return "", errors.New("blocked")
		}
		return "page text of " + url, nil
	}}
	gen := &mocks.GeneratorMock{GenerateFunc: func(context.Context, llm.Request) (string, error) { return "reply", nil }}
	src := domain.Source{URL: "feed", Platform: domain.PlatformBluesky, Account: "bot", Keywords: []string{"sqlite", "rate"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Extractor: extractor, Generator: gen,
		Seen: &seenSet{seen: map[string]bool{}}, Queue: newSubmitter()})
	report, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Drafted)

	require.Len(t, gen.GenerateCalls(), 2)
	assert.Equal(t, "page text of https://reddit.com/1", gen.GenerateCalls()[0].Req.Extracted)
	assert.Equal(t, "feed content", gen.GenerateCalls()[1].Req.Extracted, "falls back to feed content")
}

func TestMonitor_GenerationFailureSkipsEntry(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) { return golangFeed, nil }}
	gen := &mocks.GeneratorMock{GenerateFunc: func(_ context.Context, req llm.Request) (string, error) {
		if req.Entry.GUID == "t3_1" {
			return "", errors.New("llm is down")
		}
		return "reply", nil
	}}
	queue := newSubmitter()
	src := domain.Source{URL: "feed", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite", "rate"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Generator: gen, Seen: &seenSet{seen: map[string]bool{}}, Queue: queue})
	report, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Report{Sources: 1, Entries: 3, Matched: 2, Drafted: 1, Skipped: 1}, report)
	require.Len(t, queue.SubmitCalls(), 1)
	assert.Equal(t, "Re: Rate limiting APIs", queue.SubmitCalls()[0].D.Title)
}

func TestMonitor_SubmitRejected(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) { return golangFeed, nil }}
	gen := &mocks.GeneratorMock{GenerateFunc: func(context.Context, llm.Request) (string, error) { return "reply", nil }}
	queue := &mocks.SubmitterMock{SubmitFunc: func(context.Context, domain.Draft) (*domain.ContentItem, error) {
		return nil, &domain.ValidationError{Field: "body", Message: "required"}
	}}
	src := domain.Source{URL: "feed", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Generator: gen, Seen: &seenSet{seen: map[string]bool{}}, Queue: queue})
	report, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Drafted)
	assert.Equal(t, 1, report.Skipped)
}

func TestMonitor_SourceFailures(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(_ context.Context, url string) (*domain.ParsedFeed, error) {
		if url == "bad" {
			return nil, errors.New("404")
		}
		return golangFeed, nil
	}}
	gen := &mocks.GeneratorMock{GenerateFunc: func(context.Context, llm.Request) (string, error) { return "reply", nil }}
	sources := []domain.Source{
		{URL: "bad", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite"}},
		{URL: "good", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite"}},
	}

	m := New(Params{Sources: sources, Parser: parser, Generator: gen, Seen: &seenSet{seen: map[string]bool{}},
		Queue: newSubmitter(), MaxWorkers: 2})
	report, err := m.Run(context.Background())
	require.EqualError(t, err, "1 of 2 sources failed")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Drafted, "good source is processed")
}

func TestMonitor_SeenStoreError(t *testing.T) {
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) { return golangFeed, nil }}
	seen := &mocks.SeenStoreMock{MarkSeenFunc: func(context.Context, string, string) (bool, error) {
		return false, errors.New("db locked")
	}}
	gen := &mocks.GeneratorMock{}
	src := domain.Source{URL: "feed", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Generator: gen, Seen: seen, Queue: newSubmitter()})
	_, err := m.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, gen.GenerateCalls())
}

func TestMonitor_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	parser := &mocks.ParserMock{ParseFunc: func(context.Context, string) (*domain.ParsedFeed, error) {
		cancel()
		return golangFeed, nil
	}}
	gen := &mocks.GeneratorMock{}
	src := domain.Source{URL: "feed", Platform: domain.PlatformReddit, Account: "a", Keywords: []string{"sqlite"}}

	m := New(Params{Sources: []domain.Source{src}, Parser: parser, Generator: gen, Seen: &seenSet{seen: map[string]bool{}},
		Queue: newSubmitter()})
	_, err := m.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, gen.GenerateCalls())
}

func TestMatchKeywords(t *testing.T) {
	entry := domain.ParsedItem{Title: "Rate Limiting in Go", Description: "using a Sliding Window"}
	assert.Equal(t, []string{"rate limit", "sliding window"}, matchKeywords(entry, []string{"Rate Limit", "sliding window", "kafka", " "}))
	assert.Empty(t, matchKeywords(entry, []string{"python"}))
	assert.Empty(t, matchKeywords(domain.ParsedItem{Content: "rate limit"}, []string{"rate limit"}), "content is not matched")
}

func TestReplyTitle(t *testing.T) {
	assert.Equal(t, "Re: hello", replyTitle("  hello "))
	long := replyTitle(string(make([]rune, 300)))
	assert.Equal(t, maxTitleLen, len([]rune(long)))
}
