package player

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"omnia/internal/music/parsers"
	"omnia/internal/music/queue"
	"omnia/internal/music/stream"
)

// LoopMode controls what happens to the current track when it ends.
type LoopMode int

const (
	LoopOff LoopMode = iota
	LoopSingle
	LoopQueue
)

func (m LoopMode) String() string {
	switch m {
	case LoopSingle:
		return "single"
	case LoopQueue:
		return "queue"
	default:
		return "off"
	}
}

// ParseLoopMode maps a user-facing mode name to a LoopMode.
func ParseLoopMode(name string) (LoopMode, error) {
	switch name {
	case "off":
		return LoopOff, nil
	case "single":
		return LoopSingle, nil
	case "queue":
		return LoopQueue, nil
	default:
		return LoopOff, errors.New("unknown loop mode: " + name)
	}
}

// Status is the player's playback state.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "idle"
	}
}

type stopReason int

const (
	reasonFinished stopReason = iota
	reasonSkip
	reasonStop
)

var (
	ErrNoTrackPlaying  = errors.New("no track is playing")
	ErrNoTracksInQueue = errors.New("no tracks in queue")
	ErrNotConnected    = errors.New("not connected to a voice channel")
	ErrAlreadyPaused   = errors.New("playback is already paused")
	ErrNotPaused       = errors.New("playback is not paused")
)

const historyLimit = 50

// Player drives playback for one guild: a pending queue, the current
// track, loop and autoplay modes, and the voice connection lifecycle.
type Player struct {
	GuildID string

	voice    Voice
	resolver Resolver
	related  RelatedFinder
	notify   Notifier
	settings SettingsStore

	idleTimeout time.Duration

	mu        sync.Mutex
	queue     *queue.Manager
	current   *parsers.Track
	lastTrack *parsers.Track
	status    Status
	loopMode  LoopMode
	autoplay  bool
	shuffle   int
	conn      Conn
	stopCh    chan struct{}
	reason    stopReason
	idleTimer *time.Timer
	history   []string

	// seams for tests, default to the stream package
	open func(track *parsers.Track, seekSec float64) (*stream.TrackStream, error)
	send func(reader io.Reader, opusSend chan<- []byte, controls *stream.Controls) error
}

// Options wires a Player's collaborators. Notifier, RelatedFinder and
// SettingsStore may be nil.
type Options struct {
	Voice       Voice
	Resolver    Resolver
	Related     RelatedFinder
	Notifier    Notifier
	Settings    SettingsStore
	IdleTimeout time.Duration
}

func New(guildID string, opts Options) *Player {
	p := &Player{
		GuildID:     guildID,
		voice:       opts.Voice,
		resolver:    opts.Resolver,
		related:     opts.Related,
		notify:      opts.Notifier,
		settings:    opts.Settings,
		idleTimeout: opts.IdleTimeout,
		queue:       queue.New(),
		open:        stream.AutoOpenStream,
		send:        stream.StreamToOpus,
	}
	if p.idleTimeout <= 0 {
		p.idleTimeout = 3 * time.Minute
	}
	if p.settings != nil {
		if s, err := p.settings.PlayerSettings(guildID); err == nil {
			p.loopMode = s.LoopMode
			p.autoplay = s.Autoplay
			p.shuffle = s.ShuffleMode
		} else {
			log.Printf("[Player] guild %s: load settings: %v", guildID, err)
		}
	}
	return p
}

// Enqueue resolves the input and appends the resulting tracks. It does
// not start playback.
func (p *Player) Enqueue(input, selectedSource, selectedParser, requesterID, requesterName string) ([]parsers.Track, error) {
	infos, err := p.resolver.Resolve(input, selectedSource, selectedParser)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, errors.New("nothing found for input")
	}

	added := make([]parsers.Track, 0, len(infos))
	for _, info := range infos {
		track := parsers.FromInfo(info)
		track.RequesterID = requesterID
		track.RequesterName = requesterName
		p.mu.Lock()
		p.queue.Add(track)
		p.mu.Unlock()
		added = append(added, track)
	}
	return added, nil
}

// EnqueueTrack appends a ready-made track, used by playlist load.
func (p *Player) EnqueueTrack(track parsers.Track) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Add(track)
}

// Play connects to the voice channel (or moves if already connected
// elsewhere) and starts the playback loop if it is not running.
func (p *Player) Play(channelID string) error {
	p.mu.Lock()
	if p.queue.Len() == 0 && p.current == nil {
		p.mu.Unlock()
		return ErrNoTracksInQueue
	}

	if p.conn == nil || p.conn.ChannelID() != channelID {
		conn, err := p.voice.Join(p.GuildID, channelID)
		if err != nil {
			p.mu.Unlock()
			return err
		}
		p.conn = conn
	}
	p.cancelIdleLocked()

	if p.status != StatusIdle {
		p.mu.Unlock()
		return nil
	}
	p.status = StatusPlaying
	p.mu.Unlock()

	go p.playLoop()
	return nil
}

func (p *Player) playLoop() {
	for {
		track, ok := p.nextTrack()
		if !ok {
			p.mu.Lock()
			p.status = StatusIdle
			p.startIdleLocked()
			p.mu.Unlock()
			if p.notify != nil {
				p.notify.QueueEmpty(p.GuildID)
			}
			return
		}

		reason := p.playTrack(track)

		p.mu.Lock()
		p.lastTrack = track
		p.current = nil

		switch reason {
		case reasonFinished:
			switch p.loopMode {
			case LoopSingle:
				p.queue.PutFront(*track)
			case LoopQueue:
				p.queue.PutBack(*track)
			}
		case reasonSkip:
			// single mode drops the replay once so the skip actually advances
			if p.loopMode == LoopQueue {
				p.queue.PutBack(*track)
			}
		case reasonStop:
			p.status = StatusIdle
			p.startIdleLocked()
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
	}
}

// nextTrack pops the queue, falling back to an autoplay suggestion when
// the queue is drained and autoplay is on.
func (p *Player) nextTrack() (*parsers.Track, bool) {
	p.mu.Lock()
	track, err := p.queue.Next()
	autoplay := p.autoplay
	seed := p.lastTrack
	p.mu.Unlock()

	if err == nil {
		return &track, true
	}
	if !autoplay || seed == nil {
		return nil, false
	}

	next, err := p.autoplayNext(seed)
	if err != nil {
		log.Printf("[Player] guild %s: autoplay: %v", p.GuildID, err)
		return nil, false
	}
	if p.notify != nil {
		p.notify.AutoplayNext(p.GuildID, *next)
	}
	return next, true
}

// playTrack streams one track to the voice connection and reports why
// playback ended.
func (p *Player) playTrack(track *parsers.Track) stopReason {
	p.mu.Lock()
	p.current = track
	p.status = StatusPlaying
	p.stopCh = make(chan struct{})
	p.reason = reasonFinished
	p.rememberLocked(track.URL)
	conn := p.conn
	stopCh := p.stopCh
	p.mu.Unlock()

	if p.notify != nil {
		p.notify.NowPlaying(p.GuildID, *track)
	}

	ts, err := p.open(track, 0)
	if err != nil {
		log.Printf("[Player] guild %s: open %q: %v", p.GuildID, track.Title, err)
		if p.notify != nil {
			p.notify.PlaybackError(p.GuildID, *track, err)
		}
		return p.takeReason()
	}
	defer ts.Close()

	if err := conn.Speaking(true); err != nil {
		log.Printf("[Player] guild %s: speaking on: %v", p.GuildID, err)
	}
	defer func() {
		if err := conn.Speaking(false); err != nil {
			log.Printf("[Player] guild %s: speaking off: %v", p.GuildID, err)
		}
	}()

	controls := &stream.Controls{Stop: stopCh, Paused: p.isPaused}
	if err := p.send(ts.Reader, conn.OpusSend(), controls); err != nil {
		log.Printf("[Player] guild %s: stream %q: %v", p.GuildID, track.Title, err)
		if p.notify != nil {
			p.notify.PlaybackError(p.GuildID, *track, err)
		}
	}

	return p.takeReason()
}

func (p *Player) takeReason() stopReason {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reason
}

func (p *Player) isPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status == StatusPaused
}

// Skip stops the current track; the loop advances to the next one.
func (p *Player) Skip() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoTrackPlaying
	}
	p.reason = reasonSkip
	p.status = StatusPlaying
	p.closeStopLocked()
	return nil
}

// Stop halts playback and clears the queue, staying connected.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil && p.queue.Len() == 0 {
		return ErrNoTrackPlaying
	}
	p.queue.Clear()
	if p.current != nil {
		p.reason = reasonStop
		p.closeStopLocked()
	} else {
		p.status = StatusIdle
		p.startIdleLocked()
	}
	return nil
}

// Pause suspends the send loop between frames.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoTrackPlaying
	}
	if p.status == StatusPaused {
		return ErrAlreadyPaused
	}
	p.status = StatusPaused
	return nil
}

// Resume continues a paused track.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoTrackPlaying
	}
	if p.status != StatusPaused {
		return ErrNotPaused
	}
	p.status = StatusPlaying
	return nil
}

// Disconnect stops playback, clears the queue and leaves the voice channel.
func (p *Player) Disconnect() error {
	p.mu.Lock()
	if p.conn == nil {
		p.mu.Unlock()
		return ErrNotConnected
	}
	p.queue.Clear()
	if p.current != nil {
		p.reason = reasonStop
		p.closeStopLocked()
	}
	p.status = StatusIdle
	p.cancelIdleLocked()
	conn := p.conn
	p.conn = nil
	p.mu.Unlock()

	return conn.Disconnect()
}

func (p *Player) closeStopLocked() {
	if p.stopCh != nil {
		select {
		case <-p.stopCh:
		default:
			close(p.stopCh)
		}
	}
}

// SetLoopMode changes the loop mode and persists it.
func (p *Player) SetLoopMode(mode LoopMode) {
	p.mu.Lock()
	p.loopMode = mode
	p.mu.Unlock()
	p.persistSettings()
}

// SetAutoplay toggles queue backfill and persists it.
func (p *Player) SetAutoplay(on bool) {
	p.mu.Lock()
	p.autoplay = on
	p.mu.Unlock()
	p.persistSettings()
}

// Shuffle reorders the pending queue and persists the mode.
func (p *Player) Shuffle(mode int) error {
	p.mu.Lock()
	err := p.queue.Shuffle(mode)
	if err == nil {
		p.shuffle = mode
	}
	p.mu.Unlock()
	if err != nil {
		return err
	}
	p.persistSettings()
	return nil
}

func (p *Player) persistSettings() {
	if p.settings == nil {
		return
	}
	p.mu.Lock()
	s := Settings{LoopMode: p.loopMode, Autoplay: p.autoplay, ShuffleMode: p.shuffle}
	p.mu.Unlock()
	if err := p.settings.SavePlayerSettings(p.GuildID, s); err != nil {
		log.Printf("[Player] guild %s: save settings: %v", p.GuildID, err)
	}
}

// Remove deletes the pending track at the 1-based position.
func (p *Player) Remove(pos int) (parsers.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Remove(pos)
}

// Move relocates a pending track between 1-based positions.
func (p *Player) Move(from, to int) (parsers.Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Move(from, to)
}

// Queue copies up to limit pending tracks; limit <= 0 returns all.
func (p *Player) Queue(limit int) []parsers.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.List(limit)
}

func (p *Player) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Len()
}

// CurrentTrack returns a copy of the playing track, or nil.
func (p *Player) CurrentTrack() *parsers.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	track := *p.current
	return &track
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Player) LoopMode() LoopMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loopMode
}

func (p *Player) Autoplay() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoplay
}

// Connected reports whether the player holds a voice connection.
func (p *Player) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn != nil
}

// ChannelID is the joined voice channel, empty when disconnected.
func (p *Player) ChannelID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return ""
	}
	return p.conn.ChannelID()
}

func (p *Player) rememberLocked(url string) {
	p.history = append(p.history, url)
	if len(p.history) > historyLimit {
		p.history = p.history[len(p.history)-historyLimit:]
	}
}

func (p *Player) startIdleLocked() {
	p.cancelIdleLocked()
	p.idleTimer = time.AfterFunc(p.idleTimeout, func() {
		p.mu.Lock()
		idle := p.status == StatusIdle && p.conn != nil
		p.mu.Unlock()
		if !idle {
			return
		}
		log.Printf("[Player] guild %s: idle for %s, disconnecting", p.GuildID, p.idleTimeout)
		if p.notify != nil {
			p.notify.Info(p.GuildID, "Left voice channel after being idle.")
		}
		if err := p.Disconnect(); err != nil && !errors.Is(err, ErrNotConnected) {
			log.Printf("[Player] guild %s: idle disconnect: %v", p.GuildID, err)
		}
	})
}

func (p *Player) cancelIdleLocked() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}
}
