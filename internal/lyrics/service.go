package lyrics

import (
	"context"
	"errors"
	"log"
	"time"
)

// Query describes the track to look up. Duration of zero means unknown.
type Query struct {
	Artist   string
	Title    string
	Duration time.Duration
}

// Result is the lyrics text plus which provider produced it.
type Result struct {
	Text     string
	Provider string
}

// Provider fetches lyrics from one backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) (string, error)
}

var ErrNotFound = errors.New("lyrics not found")

// Service races its providers and returns the first hit.
type Service struct {
	providers []Provider
	timeout   time.Duration
}

func NewService(providers ...Provider) *Service {
	return &Service{providers: providers, timeout: 10 * time.Second}
}

// Search queries all providers concurrently; the first non-empty answer
// wins and the rest are cancelled.
func (s *Service) Search(ctx context.Context, q Query) (Result, error) {
	if len(s.providers) == 0 {
		return Result{}, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make(chan Result, len(s.providers))
	failures := make(chan error, len(s.providers))

	for _, p := range s.providers {
		go func(p Provider) {
			text, err := p.Fetch(ctx, q)
			if err != nil || text == "" {
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("[Lyrics] %s: %q by %q: %v", p.Name(), q.Title, q.Artist, err)
				}
				failures <- err
				return
			}
			results <- Result{Text: text, Provider: p.Name()}
		}(p)
	}

	pending := len(s.providers)
	for pending > 0 {
		select {
		case r := <-results:
			return r, nil
		case <-failures:
			pending--
		case <-ctx.Done():
			return Result{}, ErrNotFound
		}
	}
	return Result{}, ErrNotFound
}
