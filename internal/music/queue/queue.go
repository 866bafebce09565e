package queue

import (
	"errors"
	"math/rand"
	"sync"

	"omnia/internal/music/parsers"
)

// Shuffle modes.
const (
	ShuffleOff      = 0 // restore submission order
	ShuffleStandard = 1 // uniform random permutation
	ShuffleRiffle   = 2 // three riffle passes, keeps runs of neighbours
)

var (
	ErrEmptyQueue      = errors.New("queue is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Manager is a guild's pending track list. Tracks keep the insert ID they
// got on first Add so ShuffleOff can restore submission order later.
type Manager struct {
	mu     sync.Mutex
	tracks []parsers.Track
	nextID int64
}

func New() *Manager {
	return &Manager{nextID: 1}
}

// Add appends the track and returns its 1-based queue position.
func (m *Manager) Add(track parsers.Track) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if track.InsertID == 0 {
		track.InsertID = m.nextID
		m.nextID++
	}
	m.tracks = append(m.tracks, track)
	return len(m.tracks)
}

// Next pops the head of the queue.
func (m *Manager) Next() (parsers.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.tracks) == 0 {
		return parsers.Track{}, ErrEmptyQueue
	}
	track := m.tracks[0]
	m.tracks = m.tracks[1:]
	return track, nil
}

// PutFront reinserts a track at the head, keeping its insert ID.
func (m *Manager) PutFront(track parsers.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if track.InsertID == 0 {
		track.InsertID = m.nextID
		m.nextID++
	}
	m.tracks = append([]parsers.Track{track}, m.tracks...)
}

// PutBack reinserts a track at the tail, keeping its insert ID.
func (m *Manager) PutBack(track parsers.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if track.InsertID == 0 {
		track.InsertID = m.nextID
		m.nextID++
	}
	m.tracks = append(m.tracks, track)
}

// Remove deletes the track at the 1-based position and returns it.
func (m *Manager) Remove(pos int) (parsers.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pos < 1 || pos > len(m.tracks) {
		return parsers.Track{}, ErrIndexOutOfRange
	}
	i := pos - 1
	track := m.tracks[i]
	m.tracks = append(m.tracks[:i], m.tracks[i+1:]...)
	return track, nil
}

// Move relocates the track at 1-based position from to position to.
func (m *Manager) Move(from, to int) (parsers.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 1 || from > len(m.tracks) || to < 1 || to > len(m.tracks) {
		return parsers.Track{}, ErrIndexOutOfRange
	}
	i, j := from-1, to-1
	track := m.tracks[i]
	m.tracks = append(m.tracks[:i], m.tracks[i+1:]...)
	rest := append([]parsers.Track{}, m.tracks[j:]...)
	m.tracks = append(m.tracks[:j], track)
	m.tracks = append(m.tracks, rest...)
	return track, nil
}

// Clear drops all pending tracks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks = nil
}

// Shuffle reorders the queue per the mode. ShuffleOff sorts tracks back
// into the order they were first added.
func (m *Manager) Shuffle(mode int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch mode {
	case ShuffleOff:
		m.sortByInsertID()
	case ShuffleStandard:
		rand.Shuffle(len(m.tracks), func(i, j int) {
			m.tracks[i], m.tracks[j] = m.tracks[j], m.tracks[i]
		})
	case ShuffleRiffle:
		for range 3 {
			m.tracks = riffle(m.tracks)
		}
	default:
		return errors.New("unknown shuffle mode")
	}
	return nil
}

func (m *Manager) sortByInsertID() {
	// insertion sort, queues are short
	for i := 1; i < len(m.tracks); i++ {
		for j := i; j > 0 && m.tracks[j].InsertID < m.tracks[j-1].InsertID; j-- {
			m.tracks[j], m.tracks[j-1] = m.tracks[j-1], m.tracks[j]
		}
	}
}

// riffle splits the deck near the middle and interleaves the halves with
// random-sized chunks, like a physical riffle shuffle.
func riffle(tracks []parsers.Track) []parsers.Track {
	n := len(tracks)
	if n < 2 {
		return tracks
	}
	cut := n/2 + rand.Intn(n/2+1) - n/4
	if cut < 1 {
		cut = 1
	}
	if cut > n-1 {
		cut = n - 1
	}
	left, right := tracks[:cut], tracks[cut:]

	out := make([]parsers.Track, 0, n)
	for len(left) > 0 || len(right) > 0 {
		take := rand.Intn(3) + 1
		for i := 0; i < take && len(left) > 0; i++ {
			out = append(out, left[0])
			left = left[1:]
		}
		take = rand.Intn(3) + 1
		for i := 0; i < take && len(right) > 0; i++ {
			out = append(out, right[0])
			right = right[1:]
		}
	}
	return out
}

// List copies up to limit pending tracks; limit <= 0 returns all.
func (m *Manager) List(limit int) []parsers.Track {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.tracks)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]parsers.Track, n)
	copy(out, m.tracks[:n])
	return out
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tracks)
}
