package studio

import (
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

// MergeMode controls how preset list fields combine with the current lists
type MergeMode string

const (
	ModeOverwrite MergeMode = "overwrite"
	ModeMerge     MergeMode = "merge"
)

var ErrInvalidMode = errors.New("invalid merge mode")

// ParseMergeMode accepts "overwrite", "merge" or "" (overwrite)
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(s) {
	case "", ModeOverwrite:
		return ModeOverwrite, nil
	case ModeMerge:
		return ModeMerge, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// ApplyPreset computes the state after applying a preset. Locked fields and fields
// the preset does not carry keep their current value. Inputs are never mutated.
func ApplyPreset(current models.FormState, preset models.PresetConfig, locks models.LockMap, mode MergeMode) models.FormState {
	out := current.Clone()

	if preset.Genre != "" && !locks.IsLocked(models.FieldGenre) {
		out.Genre = preset.Genre
	}
	if preset.Mood != "" && !locks.IsLocked(models.FieldMood) {
		out.Mood = preset.Mood
	}

	lists := []struct {
		field  models.Field
		values []string
	}{
		{models.FieldInstruments, preset.Instruments},
		{models.FieldTechniques, preset.Techniques},
		{models.FieldSoundDesign, preset.SoundDesign},
	}
	for _, l := range lists {
		if l.values == nil || locks.IsLocked(l.field) {
			continue
		}
		currentList, _ := out.List(l.field)
		next := mergeList(currentList, l.values, mode)
		out, _ = out.WithList(l.field, next)
	}
	return out
}

// ApplyVibePreset applies the named preset and records it as the selected vibe.
// An empty name only clears the selection; an unknown name changes nothing.
func ApplyVibePreset(current models.FormState, name string, locks models.LockMap, mode MergeMode) models.FormState {
	if name == "" {
		out := current.Clone()
		out.VibePreset = ""
		return out
	}
	preset, ok := models.LookupPreset(name)
	if !ok {
		return current.Clone()
	}
	out := ApplyPreset(current, preset, locks, mode)
	out.VibePreset = name
	return out
}

func mergeList(current, preset []string, mode MergeMode) []string {
	if mode == ModeMerge {
		return models.Dedupe(append(append([]string{}, current...), preset...))
	}
	return append([]string{}, preset...)
}
