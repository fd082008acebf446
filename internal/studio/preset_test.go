package studio

import (
	"testing"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMergeMode(t *testing.T) {
	tests := []struct {
		in      string
		want    MergeMode
		wantErr bool
	}{
		{"", ModeOverwrite, false},
		{"overwrite", ModeOverwrite, false},
		{"merge", ModeMerge, false},
		{"append", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMergeMode(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMode)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestApplyPresetInstrumentLists(t *testing.T) {
	current := models.FormState{Genre: "Jazz", Instruments: []string{"Piano", "Drums"}}
	preset := models.PresetConfig{Instruments: []string{"Drums", "Bass"}}

	merged := ApplyPreset(current, preset, models.LockMap{}, ModeMerge)
	assert.Equal(t, []string{"Piano", "Drums", "Bass"}, merged.Instruments)

	overwritten := ApplyPreset(current, preset, models.LockMap{}, ModeOverwrite)
	assert.Equal(t, []string{"Drums", "Bass"}, overwritten.Instruments)

	assert.Equal(t, []string{"Piano", "Drums"}, current.Instruments, "input must not be mutated")
	assert.Equal(t, "Jazz", merged.Genre, "genre absent from preset is untouched")
}

func TestApplyPresetNeverTouchesLockedFields(t *testing.T) {
	current := models.InitialFormState()
	locks := models.LockMap{
		models.FieldGenre:       true,
		models.FieldInstruments: true,
		models.FieldSoundDesign: true,
	}

	for name, preset := range models.Presets() {
		for _, mode := range []MergeMode{ModeOverwrite, ModeMerge} {
			out := ApplyPreset(current, preset, locks, mode)
			assert.Equal(t, current.Genre, out.Genre, name)
			assert.Equal(t, current.Instruments, out.Instruments, name)
			assert.Equal(t, current.SoundDesign, out.SoundDesign, name)
			assert.Equal(t, preset.Mood, out.Mood, name)
		}
	}
}

func TestApplyPresetMergeIsUnion(t *testing.T) {
	current := models.InitialFormState()
	for name, preset := range models.Presets() {
		out := ApplyPreset(current, preset, models.LockMap{}, ModeMerge)

		want := map[string]struct{}{}
		for _, v := range append(append([]string{}, current.Techniques...), preset.Techniques...) {
			want[v] = struct{}{}
		}
		assert.Len(t, out.Techniques, len(want), name)
		for _, v := range out.Techniques {
			assert.Contains(t, want, v, name)
		}
		assert.Equal(t, current.Techniques, out.Techniques[:len(current.Techniques)], name)
	}
}

func TestApplyPresetOverwriteCopiesPresetList(t *testing.T) {
	for name, preset := range models.Presets() {
		out := ApplyPreset(models.InitialFormState(), preset, models.LockMap{}, ModeOverwrite)
		assert.Equal(t, preset.SoundDesign, out.SoundDesign, name)

		out.SoundDesign[0] = "mutated"
		fresh, _ := models.LookupPreset(name)
		assert.NotEqual(t, "mutated", fresh.SoundDesign[0], name)
	}
}

func TestApplyVibePreset(t *testing.T) {
	current := models.InitialFormState()

	t.Run("known preset records the name", func(t *testing.T) {
		out := ApplyVibePreset(current, "Trap Banger", models.LockMap{}, ModeOverwrite)
		assert.Equal(t, "Trap Banger", out.VibePreset)
		assert.Equal(t, "Trap", out.Genre)
		assert.Equal(t, "Energetic", out.Mood)
	})

	t.Run("unknown preset is a no-op", func(t *testing.T) {
		out := ApplyVibePreset(current, "Polka Night", models.LockMap{}, ModeOverwrite)
		assert.Equal(t, current, out)
	})

	t.Run("empty name clears the selection only", func(t *testing.T) {
		selected := ApplyVibePreset(current, "DOOM", models.LockMap{}, ModeOverwrite)
		cleared := ApplyVibePreset(selected, "", models.LockMap{}, ModeOverwrite)
		assert.Empty(t, cleared.VibePreset)
		assert.Equal(t, selected.Genre, cleared.Genre)
	})
}
