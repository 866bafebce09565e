package lyrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	delay time.Duration
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Fetch(ctx context.Context, q Query) (string, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return p.text, p.err
}

func TestSearchFirstHitWins(t *testing.T) {
	fast := &stubProvider{name: "fast", text: "la la la", delay: 10 * time.Millisecond}
	slow := &stubProvider{name: "slow", text: "other words", delay: 500 * time.Millisecond}

	s := NewService(slow, fast)
	r, err := s.Search(context.Background(), Query{Artist: "a", Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "fast", r.Provider)
	assert.Equal(t, "la la la", r.Text)
}

func TestSearchSkipsFailingProvider(t *testing.T) {
	broken := &stubProvider{name: "broken", err: errors.New("boom")}
	working := &stubProvider{name: "working", text: "words", delay: 20 * time.Millisecond}

	s := NewService(broken, working)
	r, err := s.Search(context.Background(), Query{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "working", r.Provider)
}

func TestSearchAllProvidersFail(t *testing.T) {
	s := NewService(
		&stubProvider{name: "a", err: errors.New("boom")},
		&stubProvider{name: "b", err: ErrNotFound},
	)
	_, err := s.Search(context.Background(), Query{Title: "t"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchNoProviders(t *testing.T) {
	_, err := NewService().Search(context.Background(), Query{Title: "t"})
	assert.ErrorIs(t, err, ErrNotFound)
}
