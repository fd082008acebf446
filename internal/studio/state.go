package studio

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

var ErrPromptIndex = errors.New("prompt index out of range")

// Suggestions holds the model-proposed values shown next to the multi-selects
type Suggestions struct {
	Instruments []string `json:"instruments"`
	Techniques  []string `json:"techniques"`
	SoundDesign []string `json:"soundDesign"`
}

// EmptySuggestions returns three empty, non-nil lists
func EmptySuggestions() Suggestions {
	return Suggestions{Instruments: []string{}, Techniques: []string{}, SoundDesign: []string{}}
}

// Filtered drops out-of-vocabulary and duplicate values from every list
func (s Suggestions) Filtered() Suggestions {
	return Suggestions{
		Instruments: models.Instruments.Filter(s.Instruments),
		Techniques:  models.Techniques.Filter(s.Techniques),
		SoundDesign: models.SoundDesigns.Filter(s.SoundDesign),
	}
}

// Flags are the request-in-flight markers for the async actions
type Flags struct {
	Generating bool `json:"generating"`
	Inspiring  bool `json:"inspiring"`
	Suggesting bool `json:"suggesting"`
}

// State is everything a client sees. It is treated as a value: the update
// functions below return a new State and never mutate their argument.
type State struct {
	Inputs       models.FormState `json:"inputs"`
	Locks        models.LockMap   `json:"lockedFields"`
	Suggestions  Suggestions      `json:"suggestions"`
	Prompts      []string         `json:"prompts"`
	ActivePrompt int              `json:"activePrompt"`
	PresetMode   MergeMode        `json:"presetMode"`
	Flags        Flags            `json:"flags"`
	Notice       string           `json:"notice,omitempty"`
}

// NewState builds a state from a snapshot
func NewState(snap models.Snapshot) State {
	return State{
		Inputs:      models.Normalize(snap.Inputs),
		Locks:       snap.LockedFields.Sanitize(),
		Suggestions: EmptySuggestions(),
		Prompts:     []string{},
		PresetMode:  ModeOverwrite,
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := s
	out.Inputs = s.Inputs.Clone()
	out.Locks = s.Locks.Clone()
	out.Suggestions = Suggestions{
		Instruments: slices.Clone(s.Suggestions.Instruments),
		Techniques:  slices.Clone(s.Suggestions.Techniques),
		SoundDesign: slices.Clone(s.Suggestions.SoundDesign),
	}
	out.Prompts = append([]string{}, s.Prompts...)
	return out
}

// Snapshot extracts the persisted part of the state
func (s State) Snapshot() models.Snapshot {
	return models.Snapshot{Inputs: s.Inputs.Clone(), LockedFields: s.Locks.Clone()}
}

// ActivePromptText returns the selected prompt, or "" when none was generated
func (s State) ActivePromptText() string {
	if s.ActivePrompt < 0 || s.ActivePrompt >= len(s.Prompts) {
		return ""
	}
	return s.Prompts[s.ActivePrompt]
}

// EditInputs overlays a user edit. Locks do not apply to explicit edits.
func EditInputs(s State, patch models.FormPatch) State {
	out := s.Clone()
	out.Inputs = models.Normalize(patch.ApplyTo(out.Inputs))
	out.Notice = ""
	return out
}

// ToggleListValue adds the value to a multi-select list, or removes it if present
func ToggleListValue(s State, field models.Field, value string) (State, error) {
	current, err := s.Inputs.List(field)
	if err != nil {
		return s, err
	}
	var next []string
	if slices.Contains(current, value) {
		next = slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
	} else {
		next = append(slices.Clone(current), value)
	}
	out := s.Clone()
	out.Inputs, err = out.Inputs.WithList(field, next)
	return out, err
}

// ToggleLock flips the lock on a field
func ToggleLock(s State, field models.Field) (State, error) {
	if _, err := models.ParseField(string(field)); err != nil {
		return s, err
	}
	locks, err := s.Locks.Toggle(field)
	if err != nil {
		return s, fmt.Errorf("%w: %s", err, field)
	}
	out := s.Clone()
	out.Locks = locks
	return out, nil
}

// SelectPreset applies a vibe preset in the given mode and remembers the mode
func SelectPreset(s State, name string, mode MergeMode) State {
	out := s.Clone()
	out.Inputs = ApplyVibePreset(out.Inputs, name, out.Locks, mode)
	out.PresetMode = mode
	return out
}

// ClearForm resets inputs to the empty state and drops prompts and locks
func ClearForm(s State) State {
	out := s.Clone()
	out.Inputs = models.EmptyFormState()
	out.Locks = models.LockMap{}
	out.Prompts = []string{}
	out.ActivePrompt = 0
	out.Notice = ""
	return out
}

// ClearLyrics empties the lyrics only
func ClearLyrics(s State) State {
	out := s.Clone()
	out.Inputs.Lyrics = ""
	return out
}

// StartGeneration marks prompt generation in flight and drops old prompts
func StartGeneration(s State) State {
	out := s.Clone()
	out.Flags.Generating = true
	out.Prompts = []string{}
	out.ActivePrompt = 0
	return out
}

// FinishGeneration stores generated prompts and selects the first one
func FinishGeneration(s State, prompts []string) State {
	out := s.Clone()
	out.Flags.Generating = false
	out.Prompts = append([]string{}, prompts...)
	out.ActivePrompt = 0
	return out
}

// SelectPrompt changes the active prompt
func SelectPrompt(s State, index int) (State, error) {
	if index < 0 || index >= len(s.Prompts) {
		return s, fmt.Errorf("%w: %d", ErrPromptIndex, index)
	}
	out := s.Clone()
	out.ActivePrompt = index
	return out, nil
}

// LockedPatch captures the current values of every locked field
func LockedPatch(s State) models.FormPatch {
	return models.PatchFrom(s.Inputs, s.Locks.Locked())
}

// StartInspire marks inspire in flight and drops old prompts
func StartInspire(s State) State {
	out := s.Clone()
	out.Flags.Inspiring = true
	out.Prompts = []string{}
	out.ActivePrompt = 0
	out.Notice = ""
	return out
}

// FinishInspire overlays the inspire result. Locked fields are skipped even if the
// patch carries them.
func FinishInspire(s State, patch models.FormPatch) State {
	out := s.Clone()
	out.Flags.Inspiring = false
	out.Inputs = models.Normalize(withoutLocked(patch, out.Locks).ApplyTo(out.Inputs))
	return out
}

// FailInspire clears the in-flight flag and leaves a notice; inputs are unchanged
func FailInspire(s State, notice string) State {
	out := s.Clone()
	out.Flags.Inspiring = false
	out.Notice = notice
	return out
}

// ApplyDeconstruction overlays a vibe analysis onto the unlocked fields
func ApplyDeconstruction(s State, patch models.FormPatch) State {
	out := s.Clone()
	out.Inputs = models.Normalize(withoutLocked(patch, out.Locks).ApplyTo(out.Inputs))
	out.Notice = ""
	return out
}

// AddRhythmicFeel appends a suggested technique unless techniques are locked
func AddRhythmicFeel(s State, technique string) State {
	if technique == "" || s.Locks.IsLocked(models.FieldTechniques) || slices.Contains(s.Inputs.Techniques, technique) {
		return s.Clone()
	}
	out := s.Clone()
	out.Inputs.Techniques = append(out.Inputs.Techniques, technique)
	return out
}

// SetSuggesting toggles the suggestion in-flight flag
func SetSuggesting(s State, busy bool) State {
	out := s.Clone()
	out.Flags.Suggesting = busy
	return out
}

// StoreSuggestions replaces all three suggestion lists
func StoreSuggestions(s State, sug Suggestions) State {
	out := s.Clone()
	out.Suggestions = sug.Filtered()
	out.Flags.Suggesting = false
	return out
}

// LoadSnapshot replaces inputs and locks, e.g. after importing a share token
func LoadSnapshot(s State, snap models.Snapshot) State {
	out := s.Clone()
	out.Inputs = models.Normalize(snap.Inputs)
	out.Locks = snap.LockedFields.Sanitize()
	out.Prompts = []string{}
	out.ActivePrompt = 0
	out.Notice = ""
	return out
}

// WithNotice sets the transient user-visible notice
func WithNotice(s State, notice string) State {
	out := s.Clone()
	out.Notice = notice
	return out
}

func withoutLocked(patch models.FormPatch, locks models.LockMap) models.FormPatch {
	for _, f := range locks.Locked() {
		patch.Clear(f)
	}
	return patch
}
