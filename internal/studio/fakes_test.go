package studio

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// fakeSuggester records calls and returns canned lists
type fakeSuggester struct {
	calls atomic.Int32

	mu          sync.Mutex
	instruments func(genre, mood string) ([]string, error)
	techniques  []string
	soundDesign []string
	failSound   error
	seen        []string
}

func (f *fakeSuggester) SuggestInstruments(_ context.Context, genre, mood string) ([]string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seen = append(f.seen, genre+"/"+mood)
	fn := f.instruments
	f.mu.Unlock()
	if fn != nil {
		return fn(genre, mood)
	}
	return []string{"Piano"}, nil
}

func (f *fakeSuggester) SuggestTechniques(_ context.Context, _, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.techniques, nil
}

func (f *fakeSuggester) SuggestSoundDesigns(_ context.Context, _, _ string) ([]string, error) {
	f.calls.Add(1)
	if f.failSound != nil {
		return nil, f.failSound
	}
	return f.soundDesign, nil
}

func (f *fakeSuggester) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.seen...)
}

// fakeGenerator implements Generator with overridable funcs
type fakeGenerator struct {
	prompts     []string
	inspireFunc func(locked models.FormPatch) (models.FormPatch, error)
	rhythm      string
	theme       string
	lyrics      string
	vibe        models.FormPatch
	err         error
	lastInputs  models.FormState
	block       chan struct{} // GeneratePrompts waits on it when set
	promptCalls atomic.Int32
}

func (g *fakeGenerator) GeneratePrompts(_ context.Context, inputs models.FormState) []string {
	g.promptCalls.Add(1)
	if g.block != nil {
		<-g.block
	}
	g.lastInputs = inputs
	return g.prompts
}

func (g *fakeGenerator) Inspire(_ context.Context, locked models.FormPatch) (models.FormPatch, error) {
	if g.inspireFunc != nil {
		return g.inspireFunc(locked)
	}
	return models.FormPatch{}, g.err
}

func (g *fakeGenerator) SuggestRhythmicFeel(_ context.Context, _, _ string) string {
	return g.rhythm
}

func (g *fakeGenerator) ExpandTheme(_ context.Context, _ string) (string, error) {
	return g.theme, g.err
}

func (g *fakeGenerator) GenerateLyrics(_ context.Context, _, _, _ string) (string, error) {
	return g.lyrics, g.err
}

func (g *fakeGenerator) DeconstructVibe(_ context.Context, _ string) (models.FormPatch, error) {
	return g.vibe, g.err
}
