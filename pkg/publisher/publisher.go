// Package publisher delivers approved content to social platforms. Each platform has an Adapter,
// the Registry routes publish requests by platform. Adapters return an opaque external reference.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/umputun/postguard/pkg/domain"
)

// ErrUnknownPlatform is returned for requests to a platform without adapter
var ErrUnknownPlatform = errors.New("no publisher for platform")

// Adapter publishes content to a single platform
type Adapter interface {
	Platform() domain.Platform
	Publish(ctx context.Context, req domain.PublishRequest) (ref string, err error)
}

// HealthChecker is implemented by adapters able to verify their connection
type HealthChecker interface {
	Check(ctx context.Context) error
}

// Registry routes publish requests to platform adapters
type Registry struct {
	adapters map[domain.Platform]Adapter
}

// NewRegistry makes registry from adapters, a later adapter for the same platform wins
func NewRegistry(adapters ...Adapter) *Registry {
	res := &Registry{adapters: make(map[domain.Platform]Adapter, len(adapters))}
	for _, a := range adapters {
		res.adapters[a.Platform()] = a
	}
	return res
}

// Publish sends request to the adapter of its platform
func (r *Registry) Publish(ctx context.Context, req domain.PublishRequest) (string, error) {
	a, ok := r.adapters[req.Platform]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownPlatform, req.Platform)
	}
	ref, err := a.Publish(ctx, req)
	if err != nil {
		return "", fmt.Errorf("publish item %d to %s: %w", req.ItemID, req.Platform, err)
	}
	if ref == "" {
		return "", fmt.Errorf("publish item %d to %s: empty external reference", req.ItemID, req.Platform)
	}
	return ref, nil
}

// Platforms returns platforms with registered adapters, sorted
func (r *Registry) Platforms() []domain.Platform {
	res := make([]domain.Platform, 0, len(r.adapters))
	for p := range r.adapters {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Check runs health checks of all adapters supporting it, errors are joined
func (r *Registry) Check(ctx context.Context) error {
	var errs []error
	for _, p := range r.Platforms() {
		hc, ok := r.adapters[p].(HealthChecker)
		if !ok {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Simulated is an adapter which doesn't talk to any network and returns sim-{platform}-{n} references
type Simulated struct {
	platform domain.Platform
	counter  atomic.Int64

	mu       sync.Mutex
	failFunc func(req domain.PublishRequest) error
	sent     []domain.PublishRequest
}

// NewSimulated makes simulated adapter for the platform
func NewSimulated(platform domain.Platform) *Simulated {
	return &Simulated{platform: platform}
}

// Platform returns adapter platform
func (s *Simulated) Platform() domain.Platform { return s.platform }

// FailWith sets a function deciding which requests fail, nil resets it
func (s *Simulated) FailWith(fn func(req domain.PublishRequest) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFunc = fn
}

// Publish pretends to publish the request
func (s *Simulated) Publish(ctx context.Context, req domain.PublishRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFunc != nil {
		if err := s.failFunc(req); err != nil {
			return "", err
		}
	}
	s.sent = append(s.sent, req)
	return fmt.Sprintf("sim-%s-%d", s.platform, s.counter.Add(1)), nil
}

// Sent returns successfully published requests
func (s *Simulated) Sent() []domain.PublishRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]domain.PublishRequest, len(s.sent))
	copy(res, s.sent)
	return res
}
