package autosave

import (
	"log"
	"sync"
	"time"
)

// Flusher is the persistence sink for a draft: the entries API for an
// authenticated session, or a local draft file in guest mode.
type Flusher interface {
	Flush(content string, isPrivate bool) error
}

type State int

const (
	StateClean State = iota
	StateDirty
	StateFlushing
)

// Synchronizer debounces edits into flushes. Every edit re-arms the quiet
// timer; a flush fires only once input has paused for the full quiet period
// and the draft differs from the last persisted snapshot. Flush failures
// keep the snapshot where it was, so the next tick retries the same diff.
type Synchronizer struct {
	mu      sync.Mutex
	flushMu sync.Mutex // serializes calls into the flusher
	flusher Flusher
	quiet   time.Duration

	state State
	timer *time.Timer

	content string
	private bool

	lastContent string
	lastPrivate bool

	closed bool
}

func New(flusher Flusher, quiet time.Duration) *Synchronizer {
	return &Synchronizer{
		flusher: flusher,
		quiet:   quiet,
	}
}

// Reset seeds both the draft and the persisted snapshot, for picking up an
// entry that already exists. It clears any pending flush.
func (s *Synchronizer) Reset(content string, private bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.content = content
	s.private = private
	s.lastContent = content
	s.lastPrivate = private
	s.state = StateClean
}

// SetContent records an edit and re-arms the quiet timer.
func (s *Synchronizer) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.content = content
	s.arm()
}

// SetPrivate records a privacy toggle and re-arms the quiet timer.
func (s *Synchronizer) SetPrivate(private bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.private = private
	s.arm()
}

// Content returns the current draft content.
func (s *Synchronizer) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Private returns the current draft privacy flag.
func (s *Synchronizer) Private() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.private
}

// State reports the synchronizer state, for a saving/saved indicator.
func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// arm cancels any pending timer and starts a new one. Caller holds mu.
// While a flush is in flight the edit is only recorded: the post-flush
// diff check re-arms, so at most one flush is ever running.
func (s *Synchronizer) arm() {
	if s.state == StateFlushing {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}

	s.state = StateDirty
	s.timer = time.AfterFunc(s.quiet, s.timerFire)
}

func (s *Synchronizer) timerFire() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.content == s.lastContent && s.private == s.lastPrivate {
		s.state = StateClean
		s.mu.Unlock()
		return
	}

	content := s.content
	private := s.private
	s.state = StateFlushing
	s.mu.Unlock()

	err := s.flusher.Flush(content, private)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Swallowed on purpose: autosave failures must not interrupt
		// writing. The snapshot stays put and the timer retries.
		log.Printf("Autosave flush failed: %v", err)

		if !s.closed {
			s.state = StateDirty
			s.timer = time.AfterFunc(s.quiet, s.timerFire)
		}
		return
	}

	s.lastContent = content
	s.lastPrivate = private

	if s.content != content || s.private != private {
		// Edits arrived while the flush was in flight.
		if !s.closed {
			s.state = StateDirty
			s.timer = time.AfterFunc(s.quiet, s.timerFire)
		}
		return
	}

	s.state = StateClean
}

// Flush forces an immediate synchronous flush of any outstanding diff,
// bypassing the quiet period. Used for explicit saves and shutdown. A
// timer flush already in flight completes first; the diff is re-checked
// against the snapshot it advanced.
func (s *Synchronizer) Flush() error {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()

	if s.timer != nil {
		s.timer.Stop()
	}

	if s.content == s.lastContent && s.private == s.lastPrivate {
		s.state = StateClean
		s.mu.Unlock()
		return nil
	}

	content := s.content
	private := s.private
	s.state = StateFlushing
	s.mu.Unlock()

	err := s.flusher.Flush(content, private)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateDirty

		if !s.closed {
			s.timer = time.AfterFunc(s.quiet, s.timerFire)
		}
		return err
	}

	s.lastContent = content
	s.lastPrivate = private
	s.state = StateClean
	return nil
}

// Close flushes any outstanding diff and shuts the synchronizer down. After
// Close, edits are ignored.
func (s *Synchronizer) Close() error {
	err := s.Flush()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.closed = true
	return err
}
