package models

import (
	"encoding/json"
	"fmt"
)

// FormPatch is a partial FormState. Nil fields are absent; a non-nil pointer to an
// empty value is an explicit empty value.
type FormPatch struct {
	Genre         *string              `json:"genre,omitempty"`
	Mood          *string              `json:"mood,omitempty"`
	Instruments   *[]string            `json:"instruments,omitempty"`
	Vocals        *string              `json:"vocals,omitempty"`
	Theme         *string              `json:"theme,omitempty"`
	BPM           *string              `json:"bpm,omitempty"`
	Influences    *string              `json:"influences,omitempty"`
	Techniques    *[]string            `json:"techniques,omitempty"`
	SoundDesign   *[]string            `json:"soundDesign,omitempty"`
	Lyrics        *string              `json:"lyrics,omitempty"`
	VibePreset    *string              `json:"vibePreset,omitempty"`
	Chords        *string              `json:"chords,omitempty"`
	SongStructure *[]SongStructureItem `json:"songStructure,omitempty"`
	TempoChange   *bool                `json:"tempoChange,omitempty"`
	KeyChange     *bool                `json:"keyChange,omitempty"`
}

// Has reports whether the patch carries a value for the field
func (p FormPatch) Has(f Field) bool {
	switch f {
	case FieldGenre:
		return p.Genre != nil
	case FieldMood:
		return p.Mood != nil
	case FieldInstruments:
		return p.Instruments != nil
	case FieldVocals:
		return p.Vocals != nil
	case FieldTheme:
		return p.Theme != nil
	case FieldBPM:
		return p.BPM != nil
	case FieldInfluences:
		return p.Influences != nil
	case FieldTechniques:
		return p.Techniques != nil
	case FieldSoundDesign:
		return p.SoundDesign != nil
	case FieldLyrics:
		return p.Lyrics != nil
	case FieldVibePreset:
		return p.VibePreset != nil
	case FieldChords:
		return p.Chords != nil
	case FieldSongStructure:
		return p.SongStructure != nil
	case FieldTempoChange:
		return p.TempoChange != nil
	case FieldKeyChange:
		return p.KeyChange != nil
	}
	return false
}

// Fields returns the fields present in the patch in AllFields order
func (p FormPatch) Fields() []Field {
	var fields []Field
	for _, f := range AllFields {
		if p.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// IsEmpty reports whether the patch carries no values
func (p FormPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Clear removes a field from the patch
func (p *FormPatch) Clear(f Field) {
	switch f {
	case FieldGenre:
		p.Genre = nil
	case FieldMood:
		p.Mood = nil
	case FieldInstruments:
		p.Instruments = nil
	case FieldVocals:
		p.Vocals = nil
	case FieldTheme:
		p.Theme = nil
	case FieldBPM:
		p.BPM = nil
	case FieldInfluences:
		p.Influences = nil
	case FieldTechniques:
		p.Techniques = nil
	case FieldSoundDesign:
		p.SoundDesign = nil
	case FieldLyrics:
		p.Lyrics = nil
	case FieldVibePreset:
		p.VibePreset = nil
	case FieldChords:
		p.Chords = nil
	case FieldSongStructure:
		p.SongStructure = nil
	case FieldTempoChange:
		p.TempoChange = nil
	case FieldKeyChange:
		p.KeyChange = nil
	}
}

// SetRaw decodes a raw JSON value into the named field
func (p *FormPatch) SetRaw(f Field, raw json.RawMessage) error {
	var target any
	switch f {
	case FieldGenre:
		p.Genre = new(string)
		target = p.Genre
	case FieldMood:
		p.Mood = new(string)
		target = p.Mood
	case FieldInstruments:
		p.Instruments = new([]string)
		target = p.Instruments
	case FieldVocals:
		p.Vocals = new(string)
		target = p.Vocals
	case FieldTheme:
		p.Theme = new(string)
		target = p.Theme
	case FieldBPM:
		p.BPM = new(string)
		target = p.BPM
	case FieldInfluences:
		p.Influences = new(string)
		target = p.Influences
	case FieldTechniques:
		p.Techniques = new([]string)
		target = p.Techniques
	case FieldSoundDesign:
		p.SoundDesign = new([]string)
		target = p.SoundDesign
	case FieldLyrics:
		p.Lyrics = new(string)
		target = p.Lyrics
	case FieldVibePreset:
		p.VibePreset = new(string)
		target = p.VibePreset
	case FieldChords:
		p.Chords = new(string)
		target = p.Chords
	case FieldSongStructure:
		p.SongStructure = new([]SongStructureItem)
		target = p.SongStructure
	case FieldTempoChange:
		p.TempoChange = new(bool)
		target = p.TempoChange
	case FieldKeyChange:
		p.KeyChange = new(bool)
		target = p.KeyChange
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		p.Clear(f)
		return fmt.Errorf("decode %s: %w", f, err)
	}
	return nil
}

// ApplyTo overlays the patch onto a copy of the state
func (p FormPatch) ApplyTo(s FormState) FormState {
	out := s.Clone()
	if p.Genre != nil {
		out.Genre = *p.Genre
	}
	if p.Mood != nil {
		out.Mood = *p.Mood
	}
	if p.Instruments != nil {
		out.Instruments = cloneStrings(*p.Instruments)
	}
	if p.Vocals != nil {
		out.Vocals = *p.Vocals
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	if p.BPM != nil {
		out.BPM = *p.BPM
	}
	if p.Influences != nil {
		out.Influences = *p.Influences
	}
	if p.Techniques != nil {
		out.Techniques = cloneStrings(*p.Techniques)
	}
	if p.SoundDesign != nil {
		out.SoundDesign = cloneStrings(*p.SoundDesign)
	}
	if p.Lyrics != nil {
		out.Lyrics = *p.Lyrics
	}
	if p.VibePreset != nil {
		out.VibePreset = *p.VibePreset
	}
	if p.Chords != nil {
		out.Chords = *p.Chords
	}
	if p.SongStructure != nil {
		out.SongStructure = append([]SongStructureItem{}, *p.SongStructure...)
	}
	if p.TempoChange != nil {
		out.TempoChange = *p.TempoChange
	}
	if p.KeyChange != nil {
		out.KeyChange = *p.KeyChange
	}
	return out
}

// PatchFrom copies the named fields of a state into a patch
func PatchFrom(s FormState, fields []Field) FormPatch {
	var p FormPatch
	for _, f := range fields {
		switch f {
		case FieldGenre:
			p.Genre = ptr(s.Genre)
		case FieldMood:
			p.Mood = ptr(s.Mood)
		case FieldInstruments:
			p.Instruments = ptr(cloneStrings(s.Instruments))
		case FieldVocals:
			p.Vocals = ptr(s.Vocals)
		case FieldTheme:
			p.Theme = ptr(s.Theme)
		case FieldBPM:
			p.BPM = ptr(s.BPM)
		case FieldInfluences:
			p.Influences = ptr(s.Influences)
		case FieldTechniques:
			p.Techniques = ptr(cloneStrings(s.Techniques))
		case FieldSoundDesign:
			p.SoundDesign = ptr(cloneStrings(s.SoundDesign))
		case FieldLyrics:
			p.Lyrics = ptr(s.Lyrics)
		case FieldVibePreset:
			p.VibePreset = ptr(s.VibePreset)
		case FieldChords:
			p.Chords = ptr(s.Chords)
		case FieldSongStructure:
			p.SongStructure = ptr(append([]SongStructureItem{}, s.SongStructure...))
		case FieldTempoChange:
			p.TempoChange = ptr(s.TempoChange)
		case FieldKeyChange:
			p.KeyChange = ptr(s.KeyChange)
		}
	}
	return p
}

func ptr[T any](v T) *T {
	return &v
}
