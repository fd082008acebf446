package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Field names a FormState field using its JSON name
type Field string

const (
	FieldGenre         Field = "genre"
	FieldMood          Field = "mood"
	FieldInstruments   Field = "instruments"
	FieldVocals        Field = "vocals"
	FieldTheme         Field = "theme"
	FieldBPM           Field = "bpm"
	FieldInfluences    Field = "influences"
	FieldTechniques    Field = "techniques"
	FieldSoundDesign   Field = "soundDesign"
	FieldLyrics        Field = "lyrics"
	FieldVibePreset    Field = "vibePreset"
	FieldChords        Field = "chords"
	FieldSongStructure Field = "songStructure"
	FieldTempoChange   Field = "tempoChange"
	FieldKeyChange     Field = "keyChange"
)

// AllFields lists every form field in display order
var AllFields = []Field{
	FieldGenre,
	FieldMood,
	FieldInstruments,
	FieldVocals,
	FieldTheme,
	FieldBPM,
	FieldInfluences,
	FieldTechniques,
	FieldSoundDesign,
	FieldLyrics,
	FieldVibePreset,
	FieldChords,
	FieldSongStructure,
	FieldTempoChange,
	FieldKeyChange,
}

var (
	ErrUnknownField     = errors.New("unknown field")
	ErrFieldNotLockable = errors.New("field cannot be locked")
	ErrNotListField     = errors.New("field is not a multi-select list")
)

// ParseField validates a field name coming from a client or a model response
func ParseField(name string) (Field, error) {
	for _, f := range AllFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Lockable reports whether the field can carry a lock. Lyrics never can.
func (f Field) Lockable() bool {
	return f != FieldLyrics
}

// IsList reports whether the field is one of the multi-select string lists
func (f Field) IsList() bool {
	switch f {
	case FieldInstruments, FieldTechniques, FieldSoundDesign:
		return true
	default:
		return false
	}
}

// SongStructureItem is a single section of the requested song layout
type SongStructureItem struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Instructions string `json:"instructions"`
}

// FormState is the full parameter set the studio turns into prompts
type FormState struct {
	Genre         string              `json:"genre"`
	Mood          string              `json:"mood"`
	Instruments   []string            `json:"instruments"`
	Vocals        string              `json:"vocals"`
	Theme         string              `json:"theme"`
	BPM           string              `json:"bpm"`
	Influences    string              `json:"influences"`
	Techniques    []string            `json:"techniques"`
	SoundDesign   []string            `json:"soundDesign"`
	Lyrics        string              `json:"lyrics"`
	VibePreset    string              `json:"vibePreset"`
	Chords        string              `json:"chords"`
	SongStructure []SongStructureItem `json:"songStructure"`
	TempoChange   bool                `json:"tempoChange"`
	KeyChange     bool                `json:"keyChange"`
}

// Clone returns a deep copy so callers can mutate the result freely
func (s FormState) Clone() FormState {
	out := s
	out.Instruments = cloneStrings(s.Instruments)
	out.Techniques = cloneStrings(s.Techniques)
	out.SoundDesign = cloneStrings(s.SoundDesign)
	out.SongStructure = append([]SongStructureItem{}, s.SongStructure...)
	return out
}

// List returns the list held by a multi-select field
func (s FormState) List(f Field) ([]string, error) {
	switch f {
	case FieldInstruments:
		return s.Instruments, nil
	case FieldTechniques:
		return s.Techniques, nil
	case FieldSoundDesign:
		return s.SoundDesign, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotListField, f)
	}
}

// WithList returns a copy of the state with the given list field replaced
func (s FormState) WithList(f Field, values []string) (FormState, error) {
	out := s.Clone()
	switch f {
	case FieldInstruments:
		out.Instruments = cloneStrings(values)
	case FieldTechniques:
		out.Techniques = cloneStrings(values)
	case FieldSoundDesign:
		out.SoundDesign = cloneStrings(values)
	default:
		return s, fmt.Errorf("%w: %s", ErrNotListField, f)
	}
	return out, nil
}

// LyricsPlaceholderPrefix marks the example lyrics shipped with the initial state
const LyricsPlaceholderPrefix = "[Verse 1]"

// ChordsNone is the sentinel for "no chord progression selected"
const ChordsNone = "None"

// HasMeaningfulLyrics is true when the lyrics are user supplied rather than the template
func (s FormState) HasMeaningfulLyrics() bool {
	return strings.TrimSpace(s.Lyrics) != "" && !strings.HasPrefix(s.Lyrics, LyricsPlaceholderPrefix)
}

// HasMeaningfulChords is true when a real progression is selected
func (s FormState) HasMeaningfulChords() bool {
	return s.Chords != "" && s.Chords != ChordsNone
}

// Normalize enforces the list and song structure invariants:
// no duplicate list entries, no nil slices, unique non-empty section ids.
func Normalize(s FormState) FormState {
	out := s.Clone()
	out.Instruments = Dedupe(out.Instruments)
	out.Techniques = Dedupe(out.Techniques)
	out.SoundDesign = Dedupe(out.SoundDesign)

	seen := make(map[string]struct{}, len(out.SongStructure))
	for i := range out.SongStructure {
		id := out.SongStructure[i].ID
		if _, dup := seen[id]; id == "" || dup {
			id = NewSectionID()
			out.SongStructure[i].ID = id
		}
		seen[id] = struct{}{}
	}
	return out
}

// NewSectionID returns a fresh song structure item id
func NewSectionID() string {
	return uuid.NewString()
}

// Dedupe returns the values with duplicates removed, keeping first-seen order.
// The result is never nil.
func Dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string{}, values...)
}
