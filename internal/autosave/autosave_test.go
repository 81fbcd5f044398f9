package autosave

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuiet = 40 * time.Millisecond

type flushCall struct {
	content string
	private bool
}

type recordingFlusher struct {
	mu    sync.Mutex
	calls []flushCall
	fail  int // fail this many flushes before succeeding
}

func (f *recordingFlusher) Flush(content string, private bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, flushCall{content: content, private: private})

	if f.fail > 0 {
		f.fail--
		return errors.New("store unavailable")
	}

	return nil
}

func (f *recordingFlusher) snapshot() []flushCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]flushCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func TestDebounceCoalescesRapidEdits(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, testQuiet)

	// Keystrokes arriving faster than the quiet period.
	s.SetContent("a")
	time.Sleep(testQuiet / 4)
	s.SetContent("ab")
	time.Sleep(testQuiet / 4)
	s.SetContent("abc")

	require.Eventually(t, func() bool {
		return len(flusher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// No trailing flush once the state is clean.
	time.Sleep(3 * testQuiet)

	calls := flusher.snapshot()
	require.Len(t, calls, 1, "one flush per pause, not one per keystroke")
	assert.Equal(t, "abc", calls[0].content)
	assert.Equal(t, StateClean, s.State())
}

func TestNoFlushWithoutDiff(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, testQuiet)
	s.Reset("hello", false)

	// Editing back to the persisted snapshot arms the timer, but the
	// fire finds no diff and flushes nothing.
	s.SetContent("hello")

	time.Sleep(3 * testQuiet)

	assert.Empty(t, flusher.snapshot())
	assert.Equal(t, StateClean, s.State())
}

func TestPrivacyToggleAloneFlushes(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, testQuiet)
	s.Reset("hello", false)

	s.SetPrivate(true)

	require.Eventually(t, func() bool {
		calls := flusher.snapshot()
		return len(calls) == 1 && calls[0].private && calls[0].content == "hello"
	}, time.Second, 5*time.Millisecond)
}

func TestFailedFlushRetriesSameDiff(t *testing.T) {
	flusher := &recordingFlusher{fail: 1}
	s := New(flusher, testQuiet)

	s.SetContent("persist me")

	require.Eventually(t, func() bool {
		return len(flusher.snapshot()) >= 2
	}, time.Second, 5*time.Millisecond)

	calls := flusher.snapshot()
	assert.Equal(t, "persist me", calls[0].content)
	assert.Equal(t, "persist me", calls[1].content, "retry must carry the same diff")

	// Once a flush lands, the snapshot advances and retries stop.
	time.Sleep(3 * testQuiet)
	assert.Len(t, flusher.snapshot(), 2)
	assert.Equal(t, StateClean, s.State())
}

// blockingFlusher stalls every flush until released and records the
// highest number of flushes it ever saw running at once.
type blockingFlusher struct {
	mu       sync.Mutex
	calls    []flushCall
	inFlight int
	maxSeen  int
	release  chan struct{}
}

func (f *blockingFlusher) Flush(content string, private bool) error {
	f.mu.Lock()
	f.calls = append(f.calls, flushCall{content: content, private: private})
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	<-f.release

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return nil
}

func (f *blockingFlusher) snapshot() []flushCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]flushCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *blockingFlusher) maxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxSeen
}

func TestEditDuringFlushNeverOverlapsFlushes(t *testing.T) {
	flusher := &blockingFlusher{release: make(chan struct{})}
	s := New(flusher, testQuiet)

	s.SetContent("a")

	require.Eventually(t, func() bool {
		return len(flusher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// Edit while the first flush is stalled. No second flush may start,
	// however long the quiet period has been exceeded.
	s.SetContent("ab")
	time.Sleep(4 * testQuiet)

	assert.Len(t, flusher.snapshot(), 1)
	assert.Equal(t, StateFlushing, s.State())

	close(flusher.release)

	// The edit that arrived mid-flight is flushed afterwards, on its own.
	require.Eventually(t, func() bool {
		calls := flusher.snapshot()
		return len(calls) == 2 && calls[1].content == "ab"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, flusher.maxInFlight(), "at most one flush may be in flight")
	assert.Equal(t, "a", flusher.snapshot()[0].content)
}

func TestFailedForcedFlushKeepsRetrying(t *testing.T) {
	flusher := &recordingFlusher{fail: 1}
	s := New(flusher, testQuiet)

	s.SetContent("persist me")
	require.Error(t, s.Flush())

	// The background timer picks the diff back up without further edits.
	require.Eventually(t, func() bool {
		calls := flusher.snapshot()
		return len(calls) == 2 && calls[1].content == "persist me"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, StateClean, s.State())
}

func TestEditsDuringFlushReflush(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, testQuiet)

	s.SetContent("first")

	require.Eventually(t, func() bool {
		return len(flusher.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	s.SetContent("second")

	require.Eventually(t, func() bool {
		calls := flusher.snapshot()
		return len(calls) == 2 && calls[1].content == "second"
	}, time.Second, 5*time.Millisecond)
}

func TestFlushForcesImmediateWrite(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, time.Hour)

	s.SetContent("draft")

	require.NoError(t, s.Flush())

	calls := flusher.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "draft", calls[0].content)
	assert.Equal(t, StateClean, s.State())

	// Nothing outstanding, a second forced flush is a no-op.
	require.NoError(t, s.Flush())
	assert.Len(t, flusher.snapshot(), 1)
}

func TestCloseFlushesAndStops(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, time.Hour)

	s.SetContent("last words")
	require.NoError(t, s.Close())

	calls := flusher.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "last words", calls[0].content)

	// Edits after Close are ignored.
	s.SetContent("too late")
	time.Sleep(2 * testQuiet)
	assert.Len(t, flusher.snapshot(), 1)
}

func TestResetClearsPendingFlush(t *testing.T) {
	flusher := &recordingFlusher{}
	s := New(flusher, testQuiet)

	s.SetContent("pending")
	s.Reset("loaded from server", true)

	time.Sleep(3 * testQuiet)

	assert.Empty(t, flusher.snapshot())
	assert.Equal(t, "loaded from server", s.Content())
	assert.True(t, s.Private())
}

func TestDraftStoreRoundTrip(t *testing.T) {
	draft := NewDraftStore(filepath.Join(t.TempDir(), "duet", "draft.txt"))

	content, err := draft.Load()
	require.NoError(t, err)
	assert.Empty(t, content, "missing draft reads as empty")

	require.NoError(t, draft.Save("dear nobody"))

	content, err = draft.Load()
	require.NoError(t, err)
	assert.Equal(t, "dear nobody", content)

	require.NoError(t, draft.Clear())
	require.NoError(t, draft.Clear(), "clearing an absent draft is fine")

	content, err = draft.Load()
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestGuestModeStaysLocal(t *testing.T) {
	// In guest mode the synchronizer's only sink is the draft file: the
	// flusher below is the entire persistence surface, there is no store.
	draft := NewDraftStore(filepath.Join(t.TempDir(), "draft.txt"))
	s := New(draft, testQuiet)

	s.SetContent("a")
	s.SetContent("anonymous thoughts")

	require.Eventually(t, func() bool {
		content, err := draft.Load()
		return err == nil && content == "anonymous thoughts"
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Close())

	// Claiming hands the draft content to an authenticated create call.
	content, err := draft.Load()
	require.NoError(t, err)
	assert.Equal(t, "anonymous thoughts", content)
}
