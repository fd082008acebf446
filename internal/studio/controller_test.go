package studio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialSnapshot() models.Snapshot {
	return models.Snapshot{Inputs: models.InitialFormState(), LockedFields: models.LockMap{}}
}

func newTestController(t *testing.T, gen Generator, sug Suggester, onChange func(string, models.Snapshot)) *Controller {
	t.Helper()
	if sug == nil {
		sug = &fakeSuggester{}
	}
	c := NewController("client-1", initialSnapshot(), gen, sug, Options{
		SuggestionDebounce: time.Hour,
		OnChange:           onChange,
	})
	t.Cleanup(c.Close)
	return c
}

func TestControllerPrimeSchedulesInitialSuggestions(t *testing.T) {
	sug := &fakeSuggester{techniques: []string{"Slow Tempo"}}
	c := newTestController(t, &fakeGenerator{}, sug, nil)
	assert.False(t, c.FlushSuggestions(), "nothing is scheduled before Prime")

	c.Prime()
	require.True(t, c.FlushSuggestions())
	st := c.State()
	assert.Equal(t, []string{"Piano"}, st.Suggestions.Instruments)
	assert.Equal(t, []string{"Slow Tempo"}, st.Suggestions.Techniques)
	assert.False(t, st.Flags.Suggesting)
	assert.Equal(t, []string{"Lo-fi Hip Hop/Relaxing"}, sug.queries())

	c.Prime()
	assert.False(t, c.FlushSuggestions(), "Prime only fires once")
}

func TestControllerGenreEditRearmsSuggestions(t *testing.T) {
	sug := &fakeSuggester{}
	c := newTestController(t, &fakeGenerator{}, sug, nil)
	c.Prime()
	c.FlushSuggestions()

	genre := "Jazz"
	c.EditInputs(models.FormPatch{Genre: &genre})
	require.True(t, c.FlushSuggestions())

	theme := "new theme"
	c.EditInputs(models.FormPatch{Theme: &theme})
	assert.False(t, c.FlushSuggestions(), "theme edits do not trigger suggestions")

	assert.Equal(t, []string{"Lo-fi Hip Hop/Relaxing", "Jazz/Relaxing"}, sug.queries())
}

func TestControllerEmptyGenreClearsSuggestions(t *testing.T) {
	sug := &fakeSuggester{}
	c := newTestController(t, &fakeGenerator{}, sug, nil)
	c.Prime()
	c.FlushSuggestions()
	require.NotEmpty(t, c.State().Suggestions.Instruments)
	calls := sug.calls.Load()

	empty := ""
	c.EditInputs(models.FormPatch{Genre: &empty})
	c.FlushSuggestions()

	assert.Equal(t, EmptySuggestions(), c.State().Suggestions)
	assert.Equal(t, calls, sug.calls.Load())
}

func TestControllerLocks(t *testing.T) {
	c := newTestController(t, &fakeGenerator{}, nil, nil)

	st, err := c.ToggleLock(models.FieldGenre)
	require.NoError(t, err)
	assert.True(t, st.Locks.IsLocked(models.FieldGenre))

	_, err = c.ToggleLock(models.FieldLyrics)
	assert.ErrorIs(t, err, models.ErrFieldNotLockable)

	_, err = c.ToggleLock(models.Field("tempo"))
	assert.ErrorIs(t, err, models.ErrUnknownField)

	st, err = c.ApplyPreset("Trap Banger", "merge")
	require.NoError(t, err)
	assert.Equal(t, "Lo-fi Hip Hop", st.Inputs.Genre)
	assert.Equal(t, "Energetic", st.Inputs.Mood)
	assert.Equal(t, ModeMerge, st.PresetMode)

	_, err = c.ApplyPreset("Trap Banger", "blend")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestControllerToggleListValue(t *testing.T) {
	c := newTestController(t, &fakeGenerator{}, nil, nil)

	st, err := c.ToggleListValue(models.FieldInstruments, "Cello")
	require.NoError(t, err)
	assert.Contains(t, st.Inputs.Instruments, "Cello")

	st, err = c.ToggleListValue(models.FieldInstruments, "Cello")
	require.NoError(t, err)
	assert.NotContains(t, st.Inputs.Instruments, "Cello")

	_, err = c.ToggleListValue(models.FieldGenre, "Jazz")
	assert.ErrorIs(t, err, models.ErrNotListField)
}

func TestControllerGeneratePrompts(t *testing.T) {
	gen := &fakeGenerator{prompts: []string{"a", "b", "c"}}
	c := newTestController(t, gen, nil, nil)

	st := c.GeneratePrompts(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, st.Prompts)
	assert.Equal(t, 0, st.ActivePrompt)
	assert.False(t, st.Flags.Generating)
	assert.Equal(t, "Lo-fi Hip Hop", gen.lastInputs.Genre)

	st, err := c.SelectPrompt(2)
	require.NoError(t, err)
	assert.Equal(t, "c", st.ActivePromptText())

	_, err = c.SelectPrompt(3)
	assert.ErrorIs(t, err, ErrPromptIndex)
}

func TestControllerOverlappingGenerationsCallModelOnce(t *testing.T) {
	gen := &fakeGenerator{prompts: []string{"a", "b"}, block: make(chan struct{})}
	c := newTestController(t, gen, nil, nil)

	done := make(chan State)
	go func() { done <- c.GeneratePrompts(context.Background()) }()
	require.Eventually(t, func() bool { return c.State().Flags.Generating }, time.Second, time.Millisecond)
	assert.True(t, c.Busy())

	st := c.GeneratePrompts(context.Background())
	assert.True(t, st.Flags.Generating)
	assert.Empty(t, st.Prompts)

	close(gen.block)
	st = <-done
	assert.Equal(t, []string{"a", "b"}, st.Prompts)
	assert.False(t, c.Busy())
	assert.Equal(t, int32(1), gen.promptCalls.Load())
}

func TestControllerOverlappingInspireCallsModelOnce(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	gen := &fakeGenerator{
		inspireFunc: func(models.FormPatch) (models.FormPatch, error) {
			calls.Add(1)
			<-release
			mood := "Dark"
			return models.FormPatch{Mood: &mood}, nil
		},
	}
	c := newTestController(t, gen, nil, nil)

	type result struct {
		st  State
		err error
	}
	done := make(chan result)
	go func() {
		st, err := c.Inspire(context.Background())
		done <- result{st, err}
	}()
	require.Eventually(t, func() bool { return c.State().Flags.Inspiring }, time.Second, time.Millisecond)

	st, err := c.Inspire(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Flags.Inspiring)
	assert.Equal(t, "Relaxing", st.Inputs.Mood)

	close(release)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "Dark", res.st.Inputs.Mood)
	assert.Equal(t, int32(1), calls.Load())
}

func TestControllerInspireRespectsLocks(t *testing.T) {
	gen := &fakeGenerator{
		prompts: []string{"old"},
		inspireFunc: func(locked models.FormPatch) (models.FormPatch, error) {
			assert.Equal(t, []models.Field{models.FieldGenre}, locked.Fields())
			genre, mood, lyrics := "Techno", "Dark", ""
			return models.FormPatch{Genre: &genre, Mood: &mood, Lyrics: &lyrics}, nil
		},
	}
	c := newTestController(t, gen, nil, nil)
	c.GeneratePrompts(context.Background())
	_, err := c.ToggleLock(models.FieldGenre)
	require.NoError(t, err)

	st, err := c.Inspire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Lo-fi Hip Hop", st.Inputs.Genre)
	assert.Equal(t, "Dark", st.Inputs.Mood)
	assert.Empty(t, st.Inputs.Lyrics)
	assert.Empty(t, st.Prompts)
	assert.False(t, st.Flags.Inspiring)
}

func TestControllerInspireFailureKeepsInputs(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := newTestController(t, gen, nil, nil)
	before := c.State().Inputs

	st, err := c.Inspire(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, st.Inputs)
	assert.Equal(t, NoticeInspireFailed, st.Notice)
	assert.False(t, st.Flags.Inspiring)
}

func TestControllerAssistFeatures(t *testing.T) {
	bpm := "140"
	gen := &fakeGenerator{
		rhythm: "Syncopated Rhythm",
		theme:  "A longer theme.",
		lyrics: "[Verse]\nla la",
		vibe:   models.FormPatch{BPM: &bpm},
	}
	c := newTestController(t, gen, nil, nil)

	technique, st := c.SuggestRhythmicFeel(context.Background())
	assert.Equal(t, "Syncopated Rhythm", technique)
	assert.Contains(t, st.Inputs.Techniques, "Syncopated Rhythm")

	st, err := c.ExpandTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A longer theme.", st.Inputs.Theme)

	st, err = c.GenerateLyrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[Verse]\nla la", st.Inputs.Lyrics)

	_, err = c.ToggleLock(models.FieldBPM)
	require.NoError(t, err)
	st, err = c.DeconstructVibe(context.Background(), "fast and loud")
	require.NoError(t, err)
	assert.Equal(t, "85", st.Inputs.BPM, "locked bpm must survive deconstruction")
}

func TestControllerClearAndImport(t *testing.T) {
	var mu sync.Mutex
	var saved []models.Snapshot
	c := newTestController(t, &fakeGenerator{}, nil, func(id string, snap models.Snapshot) {
		assert.Equal(t, "client-1", id)
		mu.Lock()
		saved = append(saved, snap)
		mu.Unlock()
	})

	_, err := c.ToggleLock(models.FieldMood)
	require.NoError(t, err)
	st := c.ClearLyrics()
	assert.Empty(t, st.Inputs.Lyrics)

	st = c.ClearForm()
	assert.Equal(t, models.EmptyFormState(), st.Inputs)
	assert.Empty(t, st.Locks)

	snap := initialSnapshot()
	snap.LockedFields = models.LockMap{models.FieldChords: true}
	st = c.Import(snap)
	assert.Equal(t, "Lo-fi Hip Hop", st.Inputs.Genre)
	assert.True(t, st.Locks.IsLocked(models.FieldChords))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, saved, 4)
	assert.Equal(t, snap.LockedFields, saved[3].LockedFields)
}

func TestControllerSongStructure(t *testing.T) {
	c := newTestController(t, &fakeGenerator{}, nil, nil)

	st, err := c.AddSection("Intro")
	require.NoError(t, err)
	st, err = c.AddSection("Chorus")
	require.NoError(t, err)
	require.Len(t, st.Inputs.SongStructure, 2)
	chorus := st.Inputs.SongStructure[1].ID

	st, err = c.MoveSection(chorus, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, chorus, st.Inputs.SongStructure[0].ID)

	st, err = c.UpdateSection(chorus, "big")
	require.NoError(t, err)
	assert.Equal(t, "big", st.Inputs.SongStructure[0].Instructions)

	st, err = c.RemoveSection(chorus)
	require.NoError(t, err)
	assert.Len(t, st.Inputs.SongStructure, 1)

	_, err = c.RemoveSection(chorus)
	assert.ErrorIs(t, err, ErrUnknownSection)
}
