package studio

import (
	"context"
	"sync"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

const (
	NoticeInspireFailed     = "Could not get inspiration right now. Please try again."
	NoticeInvalidShareToken = "That share link could not be loaded. Your current session was kept."
)

// Generator produces prompts and model-assisted edits
type Generator interface {
	GeneratePrompts(ctx context.Context, inputs models.FormState) []string
	Inspire(ctx context.Context, locked models.FormPatch) (models.FormPatch, error)
	SuggestRhythmicFeel(ctx context.Context, genre, mood string) string
	ExpandTheme(ctx context.Context, theme string) (string, error)
	GenerateLyrics(ctx context.Context, theme, mood, genre string) (string, error)
	DeconstructVibe(ctx context.Context, text string) (models.FormPatch, error)
}

// Options configures a Controller
type Options struct {
	SuggestionDebounce time.Duration
	SuggestionTimeout  time.Duration
	// OnChange is called with the persisted part of the state after every
	// mutation that touches inputs or locks. It runs outside the controller lock.
	OnChange func(clientID string, snap models.Snapshot)
	// OnSuggestionBatch is called after every suggestion batch that reached the model
	OnSuggestionBatch func(d time.Duration, success, stale bool)

	// Registry only: evict controllers idle for longer than IdleTTL, checking
	// every SweepInterval (IdleTTL/2 when zero). Zero disables eviction.
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

// Controller owns one client's State and serializes every update to it.
//
// Lock order: the fetcher may call back into the controller while holding its
// own lock, so the controller never calls the fetcher while holding c.mu.
type Controller struct {
	clientID  string
	generator Generator
	fetcher   *SuggestionFetcher
	onChange  func(string, models.Snapshot)

	mu     sync.Mutex
	state  State
	primed bool
}

// NewController creates a controller. No suggestion batch is scheduled until
// Prime or a genre/mood change.
func NewController(clientID string, snap models.Snapshot, gen Generator, sug Suggester, opts Options) *Controller {
	c := &Controller{
		clientID:  clientID,
		generator: gen,
		onChange:  opts.OnChange,
		state:     NewState(snap),
	}
	c.fetcher = NewSuggestionFetcher(sug, opts.SuggestionDebounce, opts.SuggestionTimeout, c.storeSuggestions, c.setSuggesting)
	if opts.OnSuggestionBatch != nil {
		c.fetcher.Observe(opts.OnSuggestionBatch)
	}
	return c
}

// Prime schedules the first suggestion batch for the current genre and mood.
// Only the first call has an effect.
func (c *Controller) Prime() {
	c.mu.Lock()
	if c.primed {
		c.mu.Unlock()
		return
	}
	c.primed = true
	genre, mood := c.state.Inputs.Genre, c.state.Inputs.Mood
	c.mu.Unlock()

	c.fetcher.Touch(genre, mood)
}

// Busy reports whether prompt generation or inspire is in flight
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Flags.Generating || c.state.Flags.Inspiring
}

// ClientID returns the id the controller was created for
func (c *Controller) ClientID() string {
	return c.clientID
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Snapshot returns the persisted part of the state
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// EditInputs applies a user edit
func (c *Controller) EditInputs(patch models.FormPatch) State {
	next, _ := c.update(func(s State) (State, error) {
		return EditInputs(s, patch), nil
	})
	return next
}

// ToggleListValue toggles a value in one of the multi-select lists
func (c *Controller) ToggleListValue(field models.Field, value string) (State, error) {
	return c.update(func(s State) (State, error) {
		return ToggleListValue(s, field, value)
	})
}

// ToggleLock flips the lock on a field
func (c *Controller) ToggleLock(field models.Field) (State, error) {
	return c.update(func(s State) (State, error) {
		return ToggleLock(s, field)
	})
}

// ApplyPreset applies a vibe preset. mode is "overwrite", "merge" or empty.
func (c *Controller) ApplyPreset(name, mode string) (State, error) {
	m, err := ParseMergeMode(mode)
	if err != nil {
		return c.State(), err
	}
	return c.update(func(s State) (State, error) {
		return SelectPreset(s, name, m), nil
	})
}

// ClearForm resets the form and all locks
func (c *Controller) ClearForm() State {
	next, _ := c.update(func(s State) (State, error) {
		return ClearForm(s), nil
	})
	return next
}

// ClearLyrics empties the lyrics field
func (c *Controller) ClearLyrics() State {
	next, _ := c.update(func(s State) (State, error) {
		return ClearLyrics(s), nil
	})
	return next
}

// AddSection appends a song structure section
func (c *Controller) AddSection(sectionType string) (State, error) {
	return c.update(func(s State) (State, error) {
		inputs, _, err := AddSection(s.Inputs, sectionType)
		if err != nil {
			return s, err
		}
		out := s.Clone()
		out.Inputs = inputs
		return out, nil
	})
}

// RemoveSection removes a song structure section
func (c *Controller) RemoveSection(id string) (State, error) {
	return c.updateInputs(func(in models.FormState) (models.FormState, error) {
		return RemoveSection(in, id)
	})
}

// UpdateSection changes a section's instructions
func (c *Controller) UpdateSection(id, instructions string) (State, error) {
	return c.updateInputs(func(in models.FormState) (models.FormState, error) {
		return UpdateSection(in, id, instructions)
	})
}

// MoveSection moves a section up or down
func (c *Controller) MoveSection(id string, dir Direction) (State, error) {
	return c.updateInputs(func(in models.FormState) (models.FormState, error) {
		return MoveSection(in, id, dir)
	})
}

// SelectPrompt sets the active prompt
func (c *Controller) SelectPrompt(index int) (State, error) {
	return c.update(func(s State) (State, error) {
		return SelectPrompt(s, index)
	})
}

// Import replaces inputs and locks with a decoded snapshot
func (c *Controller) Import(snap models.Snapshot) State {
	next, _ := c.update(func(s State) (State, error) {
		return LoadSnapshot(s, snap), nil
	})
	return next
}

// SetNotice records a transient message for the client
func (c *Controller) SetNotice(notice string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = WithNotice(c.state, notice)
	return c.state.Clone()
}

// GeneratePrompts asks the model for prompt variations of the current inputs.
// While a generation is already in flight it returns the current state.
func (c *Controller) GeneratePrompts(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Flags.Generating {
		out := c.state.Clone()
		c.mu.Unlock()
		return out
	}
	c.state = StartGeneration(c.state)
	inputs := c.state.Inputs.Clone()
	c.mu.Unlock()

	prompts := c.generator.GeneratePrompts(ctx, inputs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = FinishGeneration(c.state, prompts)
	return c.state.Clone()
}

// Inspire fills every unlocked field (except lyrics) from the model.
// While an inspire is already in flight it returns the current state.
func (c *Controller) Inspire(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Flags.Inspiring {
		out := c.state.Clone()
		c.mu.Unlock()
		return out, nil
	}
	c.state = StartInspire(c.state)
	locked := LockedPatch(c.state)
	c.mu.Unlock()

	patch, err := c.generator.Inspire(ctx, locked)
	if err != nil {
		logger.Error("Inspire failed", err, logger.Fields{"client_id": c.clientID})
		c.mu.Lock()
		c.state = FailInspire(c.state, NoticeInspireFailed)
		out := c.state.Clone()
		c.mu.Unlock()
		return out, err
	}

	return c.update(func(s State) (State, error) {
		return FinishInspire(s, patch), nil
	})
}

// SuggestRhythmicFeel asks for one technique matching the genre and mood and
// adds it to the techniques list
func (c *Controller) SuggestRhythmicFeel(ctx context.Context) (string, State) {
	current := c.State()
	technique := c.generator.SuggestRhythmicFeel(ctx, current.Inputs.Genre, current.Inputs.Mood)
	next, _ := c.update(func(s State) (State, error) {
		return AddRhythmicFeel(s, technique), nil
	})
	return technique, next
}

// ExpandTheme rewrites the theme into a richer description
func (c *Controller) ExpandTheme(ctx context.Context) (State, error) {
	current := c.State()
	theme, err := c.generator.ExpandTheme(ctx, current.Inputs.Theme)
	if err != nil {
		return current, err
	}
	return c.updateInputs(func(in models.FormState) (models.FormState, error) {
		out := in.Clone()
		out.Theme = theme
		return out, nil
	})
}

// GenerateLyrics writes lyrics for the current theme, mood and genre
func (c *Controller) GenerateLyrics(ctx context.Context) (State, error) {
	current := c.State()
	lyrics, err := c.generator.GenerateLyrics(ctx, current.Inputs.Theme, current.Inputs.Mood, current.Inputs.Genre)
	if err != nil {
		return current, err
	}
	return c.updateInputs(func(in models.FormState) (models.FormState, error) {
		out := in.Clone()
		out.Lyrics = lyrics
		return out, nil
	})
}

// DeconstructVibe analyses a free-text description into form values for the unlocked fields
func (c *Controller) DeconstructVibe(ctx context.Context, text string) (State, error) {
	patch, err := c.generator.DeconstructVibe(ctx, text)
	if err != nil {
		return c.State(), err
	}
	return c.update(func(s State) (State, error) {
		return ApplyDeconstruction(s, patch), nil
	})
}

// RefreshSuggestions fetches suggestions for the current genre and mood now
func (c *Controller) RefreshSuggestions() State {
	current := c.State()
	c.markPrimed()
	c.fetcher.Touch(current.Inputs.Genre, current.Inputs.Mood)
	c.fetcher.Flush()
	return c.State()
}

// FlushSuggestions runs a pending debounced batch immediately
func (c *Controller) FlushSuggestions() bool {
	return c.fetcher.Flush()
}

// Close stops the suggestion timer
func (c *Controller) Close() {
	c.fetcher.Stop()
}

func (c *Controller) updateInputs(fn func(models.FormState) (models.FormState, error)) (State, error) {
	return c.update(func(s State) (State, error) {
		inputs, err := fn(s.Inputs)
		if err != nil {
			return s, err
		}
		out := s.Clone()
		out.Inputs = inputs
		return out, nil
	})
}

// update applies fn under the lock, then (outside the lock) re-arms the
// suggestion fetcher if genre or mood changed and reports the new snapshot.
func (c *Controller) update(fn func(State) (State, error)) (State, error) {
	c.mu.Lock()
	prev := c.state
	next, err := fn(prev)
	if err != nil {
		c.mu.Unlock()
		return prev.Clone(), err
	}
	c.state = next
	out := next.Clone()
	c.mu.Unlock()

	if prev.Inputs.Genre != next.Inputs.Genre || prev.Inputs.Mood != next.Inputs.Mood {
		c.markPrimed()
		c.fetcher.Touch(next.Inputs.Genre, next.Inputs.Mood)
	}
	if c.onChange != nil {
		c.onChange(c.clientID, out.Snapshot())
	}
	return out, nil
}

func (c *Controller) storeSuggestions(sug Suggestions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StoreSuggestions(c.state, sug)
}

func (c *Controller) setSuggesting(busy bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = SetSuggesting(c.state, busy)
}

func (c *Controller) markPrimed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primed = true
}
