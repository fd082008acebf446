package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewPromptBuilder()
	require.NoError(t, err)
	return b
}

func TestVariationsPrompt(t *testing.T) {
	b := newBuilder(t)

	inputs := models.EmptyFormState()
	inputs.Genre = "Synthwave"
	inputs.Mood = "Nostalgic"
	inputs.BPM = "104"
	inputs.Instruments = []string{"Synthesizer", "Drum Machine"}
	inputs.SongStructure = []models.SongStructureItem{
		{ID: "a", Type: "Intro", Instructions: "slow filter sweep"},
		{ID: "b", Type: "Chorus"},
	}

	text, err := b.Variations(inputs)
	require.NoError(t, err)

	assert.Contains(t, text, "[BPM: 104]")
	assert.Contains(t, text, "- Genre: Synthwave")
	assert.Contains(t, text, "Synthesizer, Drum Machine")
	assert.Contains(t, text, "- Intro: slow filter sweep")
	assert.Contains(t, text, "- Chorus: Standard execution")
	assert.Contains(t, text, `"variations"`)
}

func TestVariationsPromptDerivedFlags(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		name          string
		lyrics        string
		chords        string
		wantLyrics    bool
		wantChordText string
	}{
		{
			name:          "placeholder lyrics and no chords",
			lyrics:        "[Verse 1]\nExample line",
			chords:        models.ChordsNone,
			wantLyrics:    false,
			wantChordText: "Chord progression: Not specified",
		},
		{
			name:          "whitespace lyrics",
			lyrics:        "   \n ",
			chords:        "",
			wantLyrics:    false,
			wantChordText: "Chord progression: Not specified",
		},
		{
			name:          "real lyrics and chords",
			lyrics:        "Neon rain on the window",
			chords:        "I-V-vi-IV (Pop Anthem)",
			wantLyrics:    true,
			wantChordText: "Chord progression: I-V-vi-IV (Pop Anthem)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := models.EmptyFormState()
			inputs.Lyrics = tt.lyrics
			inputs.Chords = tt.chords

			text, err := b.Variations(inputs)
			require.NoError(t, err)

			assert.Contains(t, text, tt.wantChordText)
			assert.Equal(t, tt.wantLyrics, strings.Contains(text, "[Lyrics]\n"))
			if tt.wantLyrics {
				assert.Contains(t, text, tt.lyrics)
			}
		})
	}
}

func TestVariationsPromptEmptyStructure(t *testing.T) {
	b := newBuilder(t)
	text, err := b.Variations(models.EmptyFormState())
	require.NoError(t, err)
	assert.Contains(t, text, "Song structure: Not specified")
}

func TestInspirePrompt(t *testing.T) {
	b := newBuilder(t)

	t.Run("no locked fields", func(t *testing.T) {
		text, err := b.Inspire(models.FormPatch{}, []models.Field{models.FieldGenre, models.FieldBPM})
		require.NoError(t, err)
		assert.Contains(t, text, "None. Generate every field.")
		assert.Contains(t, text, "- genre\n")
		assert.Contains(t, text, "- 'bpm': a number string between 70 and 180")
		assert.NotContains(t, text, "- 'mood':")
	})

	t.Run("locked values are listed", func(t *testing.T) {
		genre := "Jazz"
		text, err := b.Inspire(models.FormPatch{Genre: &genre}, []models.Field{models.FieldMood})
		require.NoError(t, err)
		assert.Contains(t, text, `"genre": "Jazz"`)
		assert.Contains(t, text, "- 'mood': choose one")
	})
}

func TestSuggestionPrompts(t *testing.T) {
	b := newBuilder(t)

	tests := []struct {
		field   models.Field
		wantKey string
	}{
		{models.FieldInstruments, `"instruments"`},
		{models.FieldTechniques, `"techniques"`},
		{models.FieldSoundDesign, `"soundDesigns"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			text, err := b.Suggestions(tt.field, "Ambient", "Dreamy")
			require.NoError(t, err)
			assert.Contains(t, text, `Genre: "Ambient"`)
			assert.Contains(t, text, `Mood: "Dreamy"`)
			assert.Contains(t, text, tt.wantKey)
		})
	}

	_, err := b.Suggestions(models.FieldGenre, "Ambient", "Dreamy")
	assert.ErrorIs(t, err, models.ErrNotListField)
}

func TestFreeTextPrompts(t *testing.T) {
	b := newBuilder(t)

	text, err := b.RhythmicFeel("Funk", "Energetic")
	require.NoError(t, err)
	assert.Contains(t, text, `"technique"`)

	text, err = b.ExpandTheme("rainy city at night")
	require.NoError(t, err)
	assert.Contains(t, text, `"rainy city at night"`)

	text, err = b.Lyrics("lost love", "Melancholic", "Indie Folk")
	require.NoError(t, err)
	assert.Contains(t, text, "[Verse 1]")
	assert.Contains(t, text, "- Genre: Indie Folk")

	text, err = b.Deconstruct("dusty vinyl beats for studying")
	require.NoError(t, err)
	assert.Contains(t, text, `"dusty vinyl beats for studying"`)
	assert.Contains(t, text, "up to 5 of")
}

func TestInspireGuidelineCoversEveryField(t *testing.T) {
	for _, f := range models.AllFields {
		assert.NotEmpty(t, inspireGuideline(f), "field %s", f)
	}
}
