package player

import (
	"errors"
	"math/rand"

	"omnia/internal/music/parsers"
)

// autoplayNext picks a follow-up track for the seed. Candidates already
// played recently or still pending are dropped first; if everything was
// heard before it falls back to any candidate rather than going silent.
func (p *Player) autoplayNext(seed *parsers.Track) (*parsers.Track, error) {
	if p.related == nil {
		return nil, errors.New("no related track finder configured")
	}

	candidates, err := p.related.Related(seed.URL, seed.Title)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no related tracks found")
	}

	p.mu.Lock()
	seen := make(map[string]bool, len(p.history)+p.queue.Len()+1)
	seen[seed.URL] = true
	for _, url := range p.history {
		seen[url] = true
	}
	for _, t := range p.queue.List(0) {
		seen[t.URL] = true
	}
	p.mu.Unlock()

	fresh := candidates[:0:0]
	for _, c := range candidates {
		if !seen[c.URL] {
			fresh = append(fresh, c)
		}
	}
	pool := fresh
	if len(pool) == 0 {
		pool = candidates
	}

	info := pool[rand.Intn(len(pool))]
	track := parsers.FromInfo(info)
	track.RequesterName = "autoplay"
	return &track, nil
}
