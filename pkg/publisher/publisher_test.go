package publisher

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postguard/pkg/domain"
)

type emptyRefAdapter struct{}

func (emptyRefAdapter) Platform() domain.Platform { return domain.PlatformTwitter }
func (emptyRefAdapter) Publish(context.Context, domain.PublishRequest) (string, error) {
	return "", nil
}

type checkedAdapter struct {
	*Simulated
	err error
}

func (c checkedAdapter) Check(context.Context) error { return c.err }

func TestRegistry_Publish(t *testing.T) {
	reddit := NewSimulated(domain.PlatformReddit)
	reg := NewRegistry(reddit, NewSimulated(domain.PlatformLinkedIn), emptyRefAdapter{})
	ctx := context.Background()

	ref, err := reg.Publish(ctx, domain.PublishRequest{ItemID: 1, Platform: domain.PlatformReddit, Body: "one"})
	require.NoError(t, err)
	assert.Equal(t, "sim-reddit-1", ref)
	ref, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 2, Platform: domain.PlatformReddit, Body: "two"})
	require.NoError(t, err)
	assert.Equal(t, "sim-reddit-2", ref)
	ref, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 3, Platform: domain.PlatformLinkedIn})
	require.NoError(t, err)
	assert.Equal(t, "sim-linkedin-1", ref)

	_, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 4, Platform: domain.PlatformBluesky})
	require.ErrorIs(t, err, ErrUnknownPlatform)

	_, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 5, Platform: domain.PlatformTwitter})
	require.EqualError(t, err, "publish item 5 to twitter: empty external reference")

	reddit.FailWith(func(req domain.PublishRequest) error {
		if req.ItemID == 7 {
			return errors.New("rate limited by api")
		}
		return nil
	})
	_, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 7, Platform: domain.PlatformReddit})
	require.EqualError(t, err, "publish item 7 to reddit: rate limited by api")
	ref, err = reg.Publish(ctx, domain.PublishRequest{ItemID: 8, Platform: domain.PlatformReddit})
	require.NoError(t, err)
	assert.Equal(t, "sim-reddit-3", ref, "failed attempts don't consume refs")

	sent := reddit.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, "two", sent[1].Body)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = reg.Publish(cctx, domain.PublishRequest{ItemID: 9, Platform: domain.PlatformReddit})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, []domain.Platform{domain.PlatformLinkedIn, domain.PlatformReddit, domain.PlatformTwitter}, reg.Platforms())
}

func TestRegistry_Check(t *testing.T) {
	reg := NewRegistry(
		checkedAdapter{Simulated: NewSimulated(domain.PlatformBluesky), err: errors.New("bad password")},
		checkedAdapter{Simulated: NewSimulated(domain.PlatformReddit)},
		NewSimulated(domain.PlatformTwitter),
	)
	err := reg.Check(context.Background())
	require.EqualError(t, err, "bluesky: bad password")

	assert.NoError(t, NewRegistry(NewSimulated(domain.PlatformTwitter)).Check(context.Background()))
}

func TestPostText(t *testing.T) {
	assert.Equal(t, "body only", PostText("", " body only ", 300))
	assert.Equal(t, "Title\n\nbody", PostText("Title", "body", 300))
	assert.Equal(t, "Title already in body", PostText("Title", "Title already in body", 300))

	long := PostText("", strings.Repeat("ab ", 200), 300)
	assert.Equal(t, 300, utf8.RuneCountInString(long))
	assert.True(t, strings.HasSuffix(long, "…"))

	unicodeText := PostText("", strings.Repeat("é", 400), 300)
	assert.Equal(t, 300, utf8.RuneCountInString(unicodeText))
	assert.True(t, utf8.ValidString(unicodeText))
}
