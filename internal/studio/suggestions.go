package studio

import (
	"context"
	"sync"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSuggestionDebounce = 500 * time.Millisecond
	DefaultSuggestionTimeout  = 30 * time.Second
)

// Suggester asks the model for values that fit a genre and mood
type Suggester interface {
	SuggestInstruments(ctx context.Context, genre, mood string) ([]string, error)
	SuggestTechniques(ctx context.Context, genre, mood string) ([]string, error)
	SuggestSoundDesigns(ctx context.Context, genre, mood string) ([]string, error)
}

type suggestionQuery struct {
	genre string
	mood  string
}

// SuggestionFetcher debounces genre/mood changes into suggestion batches.
// Every Touch bumps a sequence number; a batch only lands if its sequence is
// still the latest when it completes.
type SuggestionFetcher struct {
	suggester Suggester
	delay     time.Duration
	timeout   time.Duration
	apply     func(Suggestions)
	busy      func(bool)
	observe   func(d time.Duration, success, stale bool)

	mu         sync.Mutex
	seq        uint64
	pendingSeq uint64
	pending    suggestionQuery
	timer      *time.Timer
	stopped    bool
}

// NewSuggestionFetcher creates a fetcher. apply receives every authoritative
// result (including the cleared lists on failure), busy tracks in-flight state.
func NewSuggestionFetcher(
	suggester Suggester, delay, timeout time.Duration, apply func(Suggestions), busy func(bool),
) *SuggestionFetcher {
	if delay <= 0 {
		delay = DefaultSuggestionDebounce
	}
	if timeout <= 0 {
		timeout = DefaultSuggestionTimeout
	}
	return &SuggestionFetcher{
		suggester: suggester,
		delay:     delay,
		timeout:   timeout,
		apply:     apply,
		busy:      busy,
	}
}

// Observe registers a callback for every completed model batch. It must be
// called before the first Touch.
func (f *SuggestionFetcher) Observe(fn func(d time.Duration, success, stale bool)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observe = fn
}

// Touch restarts the quiescence timer for the given genre and mood
func (f *SuggestionFetcher) Touch(genre, mood string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped {
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.seq++
	seq := f.seq
	f.pendingSeq = seq
	f.pending = suggestionQuery{genre: genre, mood: mood}
	f.timer = time.AfterFunc(f.delay, func() { f.fire(seq) })
}

// Flush runs the pending batch on the calling goroutine instead of waiting for
// the timer. It reports whether a batch was pending.
func (f *SuggestionFetcher) Flush() bool {
	f.mu.Lock()
	if f.pendingSeq == 0 {
		f.mu.Unlock()
		return false
	}
	seq, q := f.takePendingLocked()
	f.mu.Unlock()

	f.run(seq, q)
	return true
}

// Stop cancels the pending timer and discards any batch still in flight
func (f *SuggestionFetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.pendingSeq = 0
	f.seq++
}

// Pending reports whether a batch is waiting on the debounce timer
func (f *SuggestionFetcher) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pendingSeq != 0
}

func (f *SuggestionFetcher) fire(seq uint64) {
	f.mu.Lock()
	if f.pendingSeq != seq {
		f.mu.Unlock()
		return
	}
	seq, q := f.takePendingLocked()
	f.mu.Unlock()

	f.run(seq, q)
}

func (f *SuggestionFetcher) takePendingLocked() (uint64, suggestionQuery) {
	seq, q := f.pendingSeq, f.pending
	f.pendingSeq = 0
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	return seq, q
}

func (f *SuggestionFetcher) run(seq uint64, q suggestionQuery) {
	if q.genre == "" {
		f.deliver(seq, EmptySuggestions(), nil)
		return
	}

	start := time.Now()

	if !f.markBusy(seq) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	var result Suggestions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Instruments, err = f.suggester.SuggestInstruments(gctx, q.genre, q.mood)
		return err
	})
	g.Go(func() error {
		var err error
		result.Techniques, err = f.suggester.SuggestTechniques(gctx, q.genre, q.mood)
		return err
	})
	g.Go(func() error {
		var err error
		result.SoundDesign, err = f.suggester.SuggestSoundDesigns(gctx, q.genre, q.mood)
		return err
	})

	err := g.Wait()
	landed := f.deliver(seq, result, err)

	f.mu.Lock()
	observe := f.observe
	f.mu.Unlock()
	if observe != nil {
		observe(time.Since(start), err == nil, !landed)
	}
}

func (f *SuggestionFetcher) markBusy(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.seq {
		return false
	}
	if f.busy != nil {
		f.busy(true)
	}
	return true
}

// deliver applies the batch if it is still the latest and reports whether it was
func (f *SuggestionFetcher) deliver(seq uint64, result Suggestions, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		logger.Debug("Discarding stale suggestion batch", logger.Fields{
			"batch_seq":  seq,
			"latest_seq": f.seq,
		})
		return false
	}
	if err != nil {
		logger.Warn("Suggestion batch failed, clearing suggestions", logger.Fields{
			"error": err.Error(),
		})
		result = EmptySuggestions()
	}
	if f.apply != nil {
		f.apply(result.Filtered())
	}
	if f.busy != nil {
		f.busy(false)
	}
	return true
}
