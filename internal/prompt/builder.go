package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// Ranges requested from the model. Results are filtered, not re-checked against these.
const (
	VariationCount = 3

	DeconstructMaxInstruments = 5
	DeconstructMaxTechniques  = 4
	DeconstructMaxSoundDesign = 3
)

// Builder renders the instruction text for every model call
type Builder struct {
	templates map[string]*template.Template
}

// NewPromptBuilder parses the embedded templates
func NewPromptBuilder() (*Builder, error) {
	loader := NewPromptLoader(template.FuncMap{
		"join":      joinList,
		"guideline": inspireGuideline,
	})
	templates, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	return &Builder{templates: templates}, nil
}

// MustNewPromptBuilder is NewPromptBuilder for callers with no way to recover,
// such as the CLI. The templates are embedded so failure is a build defect.
func MustNewPromptBuilder() *Builder {
	b, err := NewPromptBuilder()
	if err != nil {
		panic(err)
	}
	return b
}

// Variations builds the prompt-variation request for a form
func (b *Builder) Variations(inputs models.FormState) (string, error) {
	return b.render(TemplateVariations, struct {
		Inputs models.FormState
		Count  int
		Lyrics bool
		Chords bool
	}{
		Inputs: inputs,
		Count:  VariationCount,
		Lyrics: inputs.HasMeaningfulLyrics(),
		Chords: inputs.HasMeaningfulChords(),
	})
}

// Inspire builds the random-fill request. locked carries the values to keep.
func (b *Builder) Inspire(locked models.FormPatch, fields []models.Field) (string, error) {
	lockedJSON := ""
	if !locked.IsEmpty() {
		raw, err := json.MarshalIndent(locked, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode locked fields: %w", err)
		}
		lockedJSON = string(raw)
	}
	return b.render(TemplateInspire, struct {
		Locked string
		Fields []models.Field
	}{Locked: lockedJSON, Fields: fields})
}

// Suggestions builds the suggestion request for one list field
func (b *Builder) Suggestions(field models.Field, genre, mood string) (string, error) {
	var name string
	switch field {
	case models.FieldInstruments:
		name = TemplateInstruments
	case models.FieldTechniques:
		name = TemplateTechniques
	case models.FieldSoundDesign:
		name = TemplateSoundDesign
	default:
		return "", fmt.Errorf("%w: %s", models.ErrNotListField, field)
	}
	vocab, _ := models.ListVocabulary(field)
	return b.render(name, genreMood{Genre: genre, Mood: mood, Allowed: vocab.Values()})
}

// RhythmicFeel builds the single-technique request
func (b *Builder) RhythmicFeel(genre, mood string) (string, error) {
	return b.render(TemplateRhythmicFeel, genreMood{Genre: genre, Mood: mood, Allowed: models.Techniques.Values()})
}

// ExpandTheme builds the theme rewrite request
func (b *Builder) ExpandTheme(theme string) (string, error) {
	return b.render(TemplateExpandTheme, struct{ Theme string }{Theme: theme})
}

// Lyrics builds the lyrics request
func (b *Builder) Lyrics(theme, mood, genre string) (string, error) {
	return b.render(TemplateLyrics, struct{ Theme, Mood, Genre string }{Theme: theme, Mood: mood, Genre: genre})
}

// Deconstruct builds the vibe analysis request
func (b *Builder) Deconstruct(text string) (string, error) {
	return b.render(TemplateDeconstruct, struct {
		Text                                          string
		Genres, Moods, Instruments                    []string
		Techniques, SoundDesigns, Vocals              []string
		MaxInstruments, MaxTechniques, MaxSoundDesign int
	}{
		Text:           text,
		Genres:         models.Genres.Values(),
		Moods:          models.Moods.Values(),
		Instruments:    models.Instruments.Values(),
		Techniques:     models.Techniques.Values(),
		SoundDesigns:   models.SoundDesigns.Values(),
		Vocals:         models.Vocals.Values(),
		MaxInstruments: DeconstructMaxInstruments,
		MaxTechniques:  DeconstructMaxTechniques,
		MaxSoundDesign: DeconstructMaxSoundDesign,
	})
}

type genreMood struct {
	Genre   string
	Mood    string
	Allowed []string
}

func (b *Builder) render(name string, data any) (string, error) {
	tmpl, ok := b.templates[name]
	if !ok {
		return "", fmt.Errorf("prompt template %s not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

func joinList(values []string) string {
	return strings.Join(values, ", ")
}

func inspireGuideline(f models.Field) string {
	switch f {
	case models.FieldGenre:
		return "- 'genre': choose one from: " + joinList(models.Genres.Values())
	case models.FieldMood:
		return "- 'mood': choose one that fits the other values from: " + joinList(models.Moods.Values())
	case models.FieldInstruments:
		return "- 'instruments': choose 2 to 5 that fit the genre from: " + joinList(models.Instruments.Values())
	case models.FieldVocals:
		return "- 'vocals': choose one from: " + joinList(models.Vocals.Values())
	case models.FieldTheme:
		return "- 'theme': a short descriptive theme (1-2 sentences) matching the other values."
	case models.FieldBPM:
		return "- 'bpm': a number string between 70 and 180 that suits the song (e.g. \"120\")."
	case models.FieldInfluences:
		return "- 'influences': 1-2 artist names or a short descriptive phrase."
	case models.FieldTechniques:
		return "- 'techniques': choose 2 to 4 from: " + joinList(models.Techniques.Values())
	case models.FieldSoundDesign:
		return "- 'soundDesign': choose 1 to 3 from: " + joinList(models.SoundDesigns.Values())
	case models.FieldVibePreset:
		return "- 'vibePreset': choose 0 or 1 that complements the idea from: " + joinList(models.VibePresets.Values()) + `. Or return "".`
	case models.FieldChords:
		return "- 'chords': choose one from: " + joinList(models.Chords.Values())
	case models.FieldLyrics:
		return `- 'lyrics': always return an empty string "".`
	case models.FieldSongStructure:
		return "- 'songStructure': 3 to 5 sections as an array of objects with \"id\" (any placeholder), \"type\" (one of " +
			joinList(models.SectionTypes.Values()) + ") and \"instructions\" (a short note). May be an empty array."
	case models.FieldTempoChange:
		return "- 'tempoChange': true or false."
	case models.FieldKeyChange:
		return "- 'keyChange': true or false."
	}
	return ""
}
