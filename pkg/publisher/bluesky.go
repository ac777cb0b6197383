package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/postguard/pkg/domain"
)

const (
	// DefaultBlueskyHost is the PDS used when none configured
	DefaultBlueskyHost = "https://bsky.social"
	blueskyMaxChars    = 300
	postCollection     = "app.bsky.feed.post"
)

// BlueskyParams defines bluesky adapter parameters
type BlueskyParams struct {
	Host        string
	Handle      string
	AppPassword string
	Timeout     time.Duration
	Clock       func() time.Time
}

// Bluesky publishes posts to a bluesky PDS with an app password session
type Bluesky struct {
	BlueskyParams

	mu     sync.Mutex
	client *xrpc.Client
}

// NewBluesky makes bluesky adapter, the session is created on first use
func NewBluesky(params BlueskyParams) *Bluesky {
	if params.Host == "" {
		params.Host = DefaultBlueskyHost
	}
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	params.Host = strings.TrimSuffix(params.Host, "/")
	return &Bluesky{BlueskyParams: params}
}

// Platform returns bluesky
func (b *Bluesky) Platform() domain.Platform { return domain.PlatformBluesky }

// Publish creates a post record and returns its at:// uri.
// An expired session is re-created once and the post retried.
func (b *Bluesky) Publish(ctx context.Context, req domain.PublishRequest) (string, error) {
	post := &appbsky.FeedPost{
		Text:      PostText(req.Title, req.Body, blueskyMaxChars),
		CreatedAt: b.Clock().UTC().Format(time.RFC3339),
	}

	uri, err := b.createPost(ctx, post)
	if err != nil && isExpiredToken(err) {
		lgr.Printf("[INFO] bluesky session for %s expired, logging in again", b.Handle)
		b.resetSession()
		uri, err = b.createPost(ctx, post)
	}
	if err != nil {
		return "", err
	}
	lgr.Printf("[DEBUG] bluesky post created for item %d: %s", req.ItemID, uri)
	return uri, nil
}

// Check verifies credentials by making sure a session exists
func (b *Bluesky) Check(ctx context.Context) error {
	_, err := b.session(ctx)
	return err
}

func (b *Bluesky) createPost(ctx context.Context, post *appbsky.FeedPost) (string, error) {
	client, err := b.session(ctx)
	if err != nil {
		return "", err
	}
	resp, err := comatproto.RepoCreateRecord(ctx, client, &comatproto.RepoCreateRecord_Input{
		Collection: postCollection,
		Repo:       client.Auth.Did,
		Record:     &lexutil.LexiconTypeDecoder{Val: post},
	})
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}
	return resp.Uri, nil
}

// session returns an authenticated client, logging in if needed
func (b *Bluesky) session(ctx context.Context) (*xrpc.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return b.client, nil
	}
	if b.Handle == "" || b.AppPassword == "" {
		return nil, errors.New("bluesky handle and app password are required")
	}

	client := &xrpc.Client{Host: b.Host, Client: &http.Client{Timeout: b.Timeout}}
	out, err := comatproto.ServerCreateSession(ctx, client, &comatproto.ServerCreateSession_Input{
		Identifier: b.Handle,
		Password:   b.AppPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("create session for %s: %w", b.Handle, err)
	}
	client.Auth = &xrpc.AuthInfo{AccessJwt: out.AccessJwt, RefreshJwt: out.RefreshJwt, Handle: out.Handle, Did: out.Did}
	b.client = client
	lgr.Printf("[INFO] bluesky session created for %s (%s)", out.Handle, out.Did)
	return client, nil
}

func (b *Bluesky) resetSession() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.client = nil
}

func isExpiredToken(err error) bool {
	var xe *xrpc.XRPCError
	return errors.As(err, &xe) && (xe.ErrStr == "ExpiredToken" || xe.ErrStr == "InvalidToken")
}

// PostText joins title and body and truncates the result to limit characters
func PostText(title, body string, limit int) string {
	text := strings.TrimSpace(body)
	if title = strings.TrimSpace(title); title != "" && !strings.HasPrefix(text, title) {
		text = title + "\n\n" + text
	}
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
